package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
	"github.com/vpolunina/news-bias-dashboard/mocks"
)

// Unit-тесты журнала взаимодействий (interactions.go).

// TestRecordInteraction_Validation — пустая идентичность, неизвестный
// kind и нулевой article_id отклоняются до обращения к хранилищу.
func TestRecordInteraction_Validation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newSvcForTest(t, mocks.NewMockStorage(ctrl))
	ctx := context.Background()

	_, err := svc.RecordInteraction(ctx, models.Identity{}, uuid.New(), models.InteractionView)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.RecordInteraction(ctx, models.UserIdentity("u1"), uuid.New(), models.InteractionKind("bookmark"))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.RecordInteraction(ctx, models.UserIdentity("u1"), uuid.Nil, models.InteractionView)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestRecordInteraction_ArticleNotFound — ссылка на несуществующую
// статью даёт ErrNotFound; заглушка не создаётся.
func TestRecordInteraction_ArticleNotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	articleID := uuid.New()

	st.EXPECT().
		ArticleByID(gomock.Any(), articleID).
		Return(nil, fmt.Errorf("absent: %w", storage.ErrNotFound))

	svc := newSvcForTest(t, st)

	_, err := svc.RecordInteraction(context.Background(), models.UserIdentity("u1"), articleID, models.InteractionLike)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestRecordInteraction_ViewUpdatesHistory — kind=view пишется с
// updateHistory=true и сбрасывает кэш идентичности.
func TestRecordInteraction_ViewUpdatesHistory(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	feedCache := mocks.NewMockFeedCache(ctrl)
	id := models.SessionIdentity("s1")
	articleID := uuid.New()

	st.EXPECT().
		ArticleByID(gomock.Any(), articleID).
		Return(&models.Article{ID: articleID}, nil)
	st.EXPECT().
		RecordInteraction(gomock.Any(), gomock.Any(), true).
		DoAndReturn(func(_ context.Context, in models.Interaction, _ bool) (*models.Interaction, error) {
			require.Equal(t, id, in.Identity)
			require.Equal(t, articleID, in.ArticleID)
			require.Equal(t, models.InteractionView, in.Kind)
			require.NotEqual(t, uuid.Nil, in.ID)
			require.False(t, in.CreatedAt.IsZero())
			out := in
			return &out, nil
		})
	feedCache.EXPECT().InvalidateIdentity(gomock.Any(), id).Return(nil)

	svc := New(st, feedCache, nil, testConfig())

	created, err := svc.RecordInteraction(context.Background(), id, articleID, models.InteractionView)
	require.NoError(t, err)
	require.Equal(t, models.InteractionView, created.Kind)
}

// TestRecordInteraction_NonViewKeepsHistory — не-view виды пишутся с
// updateHistory=false.
func TestRecordInteraction_NonViewKeepsHistory(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	feedCache := mocks.NewMockFeedCache(ctrl)
	id := models.UserIdentity("u1")
	articleID := uuid.New()

	st.EXPECT().ArticleByID(gomock.Any(), articleID).Return(&models.Article{ID: articleID}, nil)
	st.EXPECT().
		RecordInteraction(gomock.Any(), gomock.Any(), false).
		DoAndReturn(func(_ context.Context, in models.Interaction, _ bool) (*models.Interaction, error) {
			out := in
			return &out, nil
		})
	feedCache.EXPECT().InvalidateIdentity(gomock.Any(), id).Return(nil)

	svc := New(st, feedCache, nil, testConfig())

	_, err := svc.RecordInteraction(context.Background(), id, articleID, models.InteractionShare)
	require.NoError(t, err)
}

// TestRecordInteraction_InvalidateFailureIsNonFatal — сбой сброса кэша
// не отменяет уже записанное взаимодействие.
func TestRecordInteraction_InvalidateFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	feedCache := mocks.NewMockFeedCache(ctrl)
	id := models.UserIdentity("u1")
	articleID := uuid.New()

	st.EXPECT().ArticleByID(gomock.Any(), articleID).Return(&models.Article{ID: articleID}, nil)
	st.EXPECT().
		RecordInteraction(gomock.Any(), gomock.Any(), true).
		DoAndReturn(func(_ context.Context, in models.Interaction, _ bool) (*models.Interaction, error) {
			out := in
			return &out, nil
		})
	feedCache.EXPECT().InvalidateIdentity(gomock.Any(), id).Return(fmt.Errorf("redis down"))

	svc := New(st, feedCache, nil, testConfig())

	created, err := svc.RecordInteraction(context.Background(), id, articleID, models.InteractionView)
	require.NoError(t, err)
	require.NotNil(t, created)
}
