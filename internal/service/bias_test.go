package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
	"github.com/vpolunina/news-bias-dashboard/mocks"
)

// Unit-тесты разрешения предвзятости (bias.go).

// TestResolveSource_Known — метка шкалы переводится в каноническую оценку.
func TestResolveSource_Known(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	st.EXPECT().
		BiasSourceByName(gomock.Any(), "CNN").
		Return(&models.BiasSource{Name: "CNN", Rating: models.RatingCenterLeft, Reliability: 0.7}, nil)

	svc := newSvcForTest(t, st)

	bias, rel, err := svc.ResolveSource(context.Background(), "CNN")
	require.NoError(t, err)
	require.NotNil(t, bias)
	require.NotNil(t, rel)
	require.InDelta(t, -0.3, *bias, 1e-9)
	require.InDelta(t, 0.7, *rel, 1e-9)
}

// TestResolveSource_Unknown — неизвестный источник даёт (nil, nil) без
// ошибки: «неизвестно» отличается от центральной оценки (0, 0.5).
func TestResolveSource_Unknown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	st.EXPECT().
		BiasSourceByName(gomock.Any(), "Unknown Outlet").
		Return(nil, fmt.Errorf("absent: %w", storage.ErrNotFound))

	svc := newSvcForTest(t, st)

	bias, rel, err := svc.ResolveSource(context.Background(), "Unknown Outlet")
	require.NoError(t, err)
	require.Nil(t, bias)
	require.Nil(t, rel)
}

// TestResolveSource_UnmappedRating — битая метка в таблице: надёжность
// возвращается, оценка предвзятости остаётся неизвестной.
func TestResolveSource_UnmappedRating(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	st.EXPECT().
		BiasSourceByName(gomock.Any(), "Odd Outlet").
		Return(&models.BiasSource{Name: "Odd Outlet", Rating: "ultra", Reliability: 0.4}, nil)

	svc := newSvcForTest(t, st)

	bias, rel, err := svc.ResolveSource(context.Background(), "Odd Outlet")
	require.NoError(t, err)
	require.Nil(t, bias)
	require.NotNil(t, rel)
	require.InDelta(t, 0.4, *rel, 1e-9)
}

// TestBiasSourceByName_NotFound — отсутствие записи это ErrNotFound.
func TestBiasSourceByName_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	st.EXPECT().
		BiasSourceByName(gomock.Any(), "ghost").
		Return(nil, fmt.Errorf("absent: %w", storage.ErrNotFound))

	svc := newSvcForTest(t, st)

	_, err := svc.BiasSourceByName(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.BiasSourceByName(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestSeedBias — посев делегируется хранилищу с таблицей по умолчанию.
func TestSeedBias(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	st.EXPECT().
		SeedBiasSources(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []models.BiasSource) error {
			require.Equal(t, models.DefaultBiasSources(), items)
			return nil
		})

	svc := newSvcForTest(t, st)
	require.NoError(t, svc.SeedBias(context.Background()))
}
