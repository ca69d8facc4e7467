package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/mocks"
)

// Unit-тесты трендов (trending.go).

// TestTrendingTopics_OrderAndLimit — количество по убыванию, при
// равенстве — категория по алфавиту; limit применяется после сортировки.
func TestTrendingTopics_OrderAndLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	st.EXPECT().
		InteractionCountsByCategory(gomock.Any(), gomock.Any()).
		Return(map[string]int64{
			"politics": 5,
			"science":  2,
			"business": 5,
			"health":   1,
		}, nil)

	svc := newSvcForTest(t, st)

	topics, err := svc.TrendingTopics(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, []models.TrendingTopic{
		{Topic: "business", Count: 5},
		{Topic: "politics", Count: 5},
		{Topic: "science", Count: 2},
	}, topics)
}

// TestTrendingTopics_FallbackToArticleCounts — пустой журнал
// взаимодействий переключает тренды на объём публикаций.
func TestTrendingTopics_FallbackToArticleCounts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	gomock.InOrder(
		st.EXPECT().
			InteractionCountsByCategory(gomock.Any(), gomock.Any()).
			Return(map[string]int64{}, nil),
		st.EXPECT().
			CategoryCounts(gomock.Any()).
			Return(map[string]int64{"technology": 7}, nil),
	)

	svc := newSvcForTest(t, st)

	topics, err := svc.TrendingTopics(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, []models.TrendingTopic{{Topic: "technology", Count: 7}}, topics)
}

// TestTrendingTopics_NegativeLimit — отрицательный limit отклоняется.
func TestTrendingTopics_NegativeLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newSvcForTest(t, mocks.NewMockStorage(ctrl))

	_, err := svc.TrendingTopics(context.Background(), -1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
