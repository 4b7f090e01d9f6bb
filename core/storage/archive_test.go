package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"puzzle-leaderboard/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2023, 5, 8, 9, 30, 0, 0, time.UTC)

func newTestArchive(client Client, retentionDays int) *Archive {
	a := NewArchive(client, Config{Bucket: "leaderboard-archive", RetentionDays: retentionDays})
	a.now = func() time.Time { return fixedNow }
	return a
}

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, i := range infos {
		ch <- i
	}
	close(ch)
	return ch
}

func TestArchive_Save(t *testing.T) {
	client := new(mocks.Client)
	a := newTestArchive(client, 30)
	body := []byte("<html></html>")

	client.On("PutObject", mock.Anything, "leaderboard-archive", "pages/20230508T093000.000000000Z.html",
		mock.Anything, int64(len(body)), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "text/html"
		})).Return(minio.UploadInfo{}, nil)

	key, err := a.Save(context.Background(), "pages", ".html", "text/html", body)
	require.NoError(t, err)
	assert.Equal(t, "pages/20230508T093000.000000000Z.html", key)
	client.AssertExpectations(t)
}

func TestArchive_SaveError(t *testing.T) {
	client := new(mocks.Client)
	a := newTestArchive(client, 30)

	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	key, err := a.Save(context.Background(), "pages", ".html", "text/html", []byte("x"))
	assert.Error(t, err)
	assert.Empty(t, key)
}

func TestArchive_Prune(t *testing.T) {
	t.Run("Removes stale objects", func(t *testing.T) {
		client := new(mocks.Client)
		a := newTestArchive(client, 30)

		list := objects(
			minio.ObjectInfo{Key: "pages/old.html", LastModified: fixedNow.AddDate(0, 0, -31)},
			minio.ObjectInfo{Key: "pages/new.html", LastModified: fixedNow.AddDate(0, 0, -1)},
		)
		client.On("ListObjects", mock.Anything, "leaderboard-archive", mock.Anything).Return(list)
		client.On("RemoveObjects", mock.Anything, "leaderboard-archive", mock.Anything, mock.Anything).Return(nil)

		n, err := a.Prune(context.Background(), "pages")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		client.AssertExpectations(t)
	})

	t.Run("Nothing stale", func(t *testing.T) {
		client := new(mocks.Client)
		a := newTestArchive(client, 30)

		client.On("ListObjects", mock.Anything, "leaderboard-archive", mock.Anything).
			Return(objects(minio.ObjectInfo{Key: "pages/new.html", LastModified: fixedNow}))

		n, err := a.Prune(context.Background(), "pages")
		require.NoError(t, err)
		assert.Zero(t, n)
		client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Retention disabled", func(t *testing.T) {
		client := new(mocks.Client)
		a := newTestArchive(client, 0)

		n, err := a.Prune(context.Background(), "pages")
		require.NoError(t, err)
		assert.Zero(t, n)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Remove error", func(t *testing.T) {
		client := new(mocks.Client)
		a := newTestArchive(client, 30)

		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "pages/old.html", Err: errors.New("denied")}
		close(errCh)

		client.On("ListObjects", mock.Anything, mock.Anything, mock.Anything).
			Return(objects(minio.ObjectInfo{Key: "pages/old.html", LastModified: fixedNow.AddDate(-1, 0, 0)}))
		client.On("RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		_, err := a.Prune(context.Background(), "pages")
		assert.ErrorContains(t, err, "pages/old.html")
	})

	t.Run("List error stops the listing", func(t *testing.T) {
		client := new(mocks.Client)
		a := newTestArchive(client, 30)

		// Unbuffered like the real client: the producer blocks until read or cancelled.
		list := make(chan minio.ObjectInfo)
		done := make(chan struct{})
		client.On("ListObjects", mock.Anything, "leaderboard-archive", mock.Anything).
			Run(func(args mock.Arguments) {
				ctx := args.Get(0).(context.Context)
				go func() {
					defer close(done)
					defer close(list)
					list <- minio.ObjectInfo{Err: errors.New("throttled")}
					for i := 0; i < 3; i++ {
						select {
						case list <- minio.ObjectInfo{Key: "pages/more.html"}:
						case <-ctx.Done():
							return
						}
					}
				}()
			}).
			Return((<-chan minio.ObjectInfo)(list))

		_, err := a.Prune(context.Background(), "pages")
		assert.ErrorContains(t, err, "throttled")

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("listing goroutine still running")
		}
		client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Remove error cancels the removal", func(t *testing.T) {
		client := new(mocks.Client)
		a := newTestArchive(client, 30)

		var removeCtx context.Context
		errCh := make(chan minio.RemoveObjectError, 2)
		errCh <- minio.RemoveObjectError{ObjectName: "pages/a.html", Err: errors.New("denied")}
		errCh <- minio.RemoveObjectError{ObjectName: "pages/b.html", Err: errors.New("denied")}
		close(errCh)

		client.On("ListObjects", mock.Anything, mock.Anything, mock.Anything).
			Return(objects(
				minio.ObjectInfo{Key: "pages/a.html", LastModified: fixedNow.AddDate(-1, 0, 0)},
				minio.ObjectInfo{Key: "pages/b.html", LastModified: fixedNow.AddDate(-1, 0, 0)},
			))
		client.On("RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { removeCtx = args.Get(0).(context.Context) }).
			Return((<-chan minio.RemoveObjectError)(errCh))

		_, err := a.Prune(context.Background(), "pages")
		assert.ErrorContains(t, err, "pages/a.html")
		require.NotNil(t, removeCtx)
		assert.ErrorIs(t, removeCtx.Err(), context.Canceled)
	})
}
