package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

type item struct {
	ID    int64
	Name  string
	Media []domain.MediaFile
}

func (i item) Key() int64 { return i.ID }

func seeded(t *testing.T, rows ...item) *Repo[item] {
	t.Helper()
	r := NewRepo[item]("items")
	err := r.Fetch(context.Background(), func(context.Context) ([]item, domain.Page, error) {
		return rows, domain.SinglePage(len(rows)), nil
	})
	require.NoError(t, err)
	return r
}

func TestRepo_LoadingIsSetWhileCallRuns(t *testing.T) {
	r := NewRepo[item]("items")
	var during bool
	err := r.Fetch(context.Background(), func(context.Context) ([]item, domain.Page, error) {
		during = r.Loading()
		return nil, domain.Page{}, nil
	})
	require.NoError(t, err)
	assert.True(t, during)
	assert.False(t, r.Loading())
	assert.NotNil(t, r.Items())
	assert.Empty(t, r.Items())
	assert.NotNil(t, r.Snapshot().Items)
}

func TestRepo_CreatePrependsAndCounts(t *testing.T) {
	r := seeded(t, item{ID: 1}, item{ID: 2})
	_, err := r.Create(context.Background(), func(context.Context) (item, error) {
		return item{ID: 3, Name: "new"}, nil
	})
	require.NoError(t, err)

	items := r.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, 3, r.Page().TotalCount)
}

func TestRepo_UpdateReplacesInPlaceAndCurrent(t *testing.T) {
	r := seeded(t, item{ID: 1, Name: "a"}, item{ID: 2, Name: "b"})
	r.SetCurrent(&item{ID: 2, Name: "b"})

	_, err := r.Update(context.Background(), 2, func(context.Context) (item, error) {
		return item{ID: 2, Name: "B"}, nil
	})
	require.NoError(t, err)

	items := r.Items()
	assert.Equal(t, "B", items[1].Name)
	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "B", cur.Name)
}

func TestRepo_UpdateOfUncachedIDLeavesListAlone(t *testing.T) {
	r := seeded(t, item{ID: 1, Name: "a"})
	_, err := r.Update(context.Background(), 9, func(context.Context) (item, error) {
		return item{ID: 9, Name: "z"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1, Name: "a"}}, r.Items())
}

func TestRepo_DeleteAlwaysDecrements(t *testing.T) {
	r := seeded(t, item{ID: 1}, item{ID: 2})
	r.SetCurrent(&item{ID: 1})
	del := func(context.Context) error { return nil }

	require.NoError(t, r.Delete(context.Background(), 1, del))
	assert.Equal(t, 1, r.Page().TotalCount)
	_, ok := r.Current()
	assert.False(t, ok)

	// a row from another page is gone from the backend too
	require.NoError(t, r.Delete(context.Background(), 42, del))
	assert.Equal(t, 0, r.Page().TotalCount)
	assert.Len(t, r.Items(), 1)

	require.NoError(t, r.Delete(context.Background(), 43, del))
	assert.Equal(t, 0, r.Page().TotalCount, "count never goes negative")
}

func TestRepo_FailureKeepsStateAndRecordsError(t *testing.T) {
	r := seeded(t, item{ID: 1})
	boom := &api.Error{Status: 500, Message: "Internal Server Error"}

	err := r.Delete(context.Background(), 1, func(context.Context) error { return boom })
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	msg, server := r.Err()
	assert.Equal(t, "Internal Server Error", msg)
	assert.True(t, server)
	assert.Len(t, r.Items(), 1)
	assert.False(t, r.Loading())

	// the next call clears it
	require.NoError(t, r.Do(context.Background(), "noop", 0, func(context.Context) error { return nil }))
	msg, server = r.Err()
	assert.Empty(t, msg)
	assert.False(t, server)
}

func TestRepo_ValidationErrorIsNotServerError(t *testing.T) {
	r := seeded(t, item{ID: 1})
	err := r.Delete(context.Background(), 1, func(context.Context) error {
		return &api.Error{Status: 409, Message: "in use"}
	})
	require.Error(t, err)
	msg, server := r.Err()
	assert.Equal(t, "in use", msg)
	assert.False(t, server)
}

func TestRepo_DeleteMediaStripsListAndCurrent(t *testing.T) {
	media := []domain.MediaFile{{ID: 10}, {ID: 11}}
	r := seeded(t, item{ID: 1, Media: media})
	r.SetCurrent(&item{ID: 1, Media: media})

	err := r.DeleteMedia(context.Background(), 1, 10, func(context.Context) error { return nil },
		func(i item, id int64) item {
			i.Media = domain.WithoutMedia(i.Media, id)
			return i
		})
	require.NoError(t, err)

	got, _ := r.Find(1)
	assert.Equal(t, []domain.MediaFile{{ID: 11}}, got.Media)
	cur, _ := r.Current()
	assert.Equal(t, []domain.MediaFile{{ID: 11}}, cur.Media)
}

func TestRepo_EventsAndUnsubscribe(t *testing.T) {
	r := seeded(t)
	var got []Event
	cancel := r.Subscribe(func(ev Event) { got = append(got, ev) })

	_, _ = r.Create(context.Background(), func(context.Context) (item, error) { return item{ID: 5}, nil })
	_ = r.Delete(context.Background(), 5, func(context.Context) error { return errors.New("nope") })
	cancel()
	_ = r.Delete(context.Background(), 5, func(context.Context) error { return nil })

	require.Len(t, got, 2)
	assert.Equal(t, Event{Store: "items", Kind: Created, Op: "create", ID: 5}, got[0])
	assert.Equal(t, Failed, got[1].Kind)
	assert.Equal(t, "delete", got[1].Op)
}

func TestRepo_SnapshotIsACopy(t *testing.T) {
	r := seeded(t, item{ID: 1, Name: "a"})
	snap := r.Snapshot()
	snap.Items[0].Name = "changed"
	got, _ := r.Find(1)
	assert.Equal(t, "a", got.Name)
}
