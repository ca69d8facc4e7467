package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/vpolunina/news-bias-dashboard/internal/cache"
	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
	"github.com/vpolunina/news-bias-dashboard/mocks"
)

// Unit-тесты настроек идентичности (preferences.go).

// TestGetPreferences_LazyCreate — первое чтение незнакомой идентичности
// создаёт и возвращает пустую запись, а не ошибку.
func TestGetPreferences_LazyCreate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	id := models.SessionIdentity("s1")

	empty := models.EmptyPreference(id)

	gomock.InOrder(
		st.EXPECT().
			PreferencesByIdentity(gomock.Any(), id).
			Return(nil, fmt.Errorf("absent: %w", storage.ErrNotFound)),
		st.EXPECT().
			SavePreferences(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, pref models.Preference) (*models.Preference, error) {
				require.Equal(t, id, pref.Identity)
				require.Empty(t, pref.Interests)
				require.Empty(t, pref.Categories)
				out := empty
				return &out, nil
			}),
	)

	svc := newSvcForTest(t, st)

	pref, err := svc.GetPreferences(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, pref.Identity)
	require.Empty(t, pref.Interests)
}

// TestGetPreferences_Existing — существующая запись возвращается как есть.
func TestGetPreferences_Existing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	id := models.UserIdentity("u1")

	stored := models.EmptyPreference(id)
	stored.Interests = []string{"climate"}

	st.EXPECT().PreferencesByIdentity(gomock.Any(), id).Return(&stored, nil)

	svc := newSvcForTest(t, st)

	pref, err := svc.GetPreferences(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, []string{"climate"}, pref.Interests)
}

// TestGetPreferences_ZeroIdentity — пустая идентичность отклоняется.
func TestGetPreferences_ZeroIdentity(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newSvcForTest(t, mocks.NewMockStorage(ctrl))

	_, err := svc.GetPreferences(context.Background(), models.Identity{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestUpdatePreferences_NormalizesAndInvalidates — списки нормализуются,
// кэш ленты идентичности сбрасывается.
func TestUpdatePreferences_NormalizesAndInvalidates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	feedCache := mocks.NewMockFeedCache(ctrl)
	id := models.UserIdentity("u1")

	st.EXPECT().
		SavePreferences(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pref models.Preference) (*models.Preference, error) {
			require.Equal(t, []string{"Climate", "energy"}, pref.Interests,
				"trim + case-insensitive dedup keeps first spelling")
			require.Equal(t, []string{"politics"}, pref.Categories, "empty entries dropped")
			out := pref
			return &out, nil
		})
	feedCache.EXPECT().InvalidateIdentity(gomock.Any(), id).Return(nil)

	svc := New(st, feedCache, nil, testConfig())

	saved, err := svc.UpdatePreferences(context.Background(), models.Preference{
		Identity:  id,
		Interests: []string{" Climate ", "climate", "energy"},
		Categories: []string{
			"politics", "", "  ",
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Climate", "energy"}, saved.Interests)
}

// TestUpdatePreferences_InvalidateFailureIsNonFatal — сбой инвалидации
// кэша не отменяет сохранённые настройки.
func TestUpdatePreferences_InvalidateFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	feedCache := mocks.NewMockFeedCache(ctrl)
	id := models.UserIdentity("u1")

	stored := models.EmptyPreference(id)
	st.EXPECT().SavePreferences(gomock.Any(), gomock.Any()).Return(&stored, nil)
	feedCache.EXPECT().InvalidateIdentity(gomock.Any(), id).Return(fmt.Errorf("redis down"))

	svc := New(st, feedCache, nil, testConfig())

	_, err := svc.UpdatePreferences(context.Background(), models.Preference{Identity: id})
	require.NoError(t, err)
}

// Компиляционная страховка: no-op кэш удовлетворяет контракту.
var _ cache.FeedCache = cache.NewNoop()
