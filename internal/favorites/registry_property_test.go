package favorites

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/wayfarer/internal/kv"
	"github.com/zjrosen/wayfarer/internal/posts"
)

func TestAdd_DistinctIDsReverseOrder_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		idList := rapid.SliceOfNDistinct(rapid.IntRange(1, 100), 0, 30, rapid.ID[int]).Draw(t, "ids")

		r := New(kv.NewMemoryStore(0))
		for _, id := range idList {
			added, err := r.Add(posts.Post{ID: id, Title: "t"})
			require.NoError(t, err)
			require.True(t, added)
		}

		want := slices.Clone(idList)
		slices.Reverse(want)
		require.Equal(t, want, ids(r.List()))
	})
}

// Model-based check: the registry matches a plain slice model across random
// add, remove and clear sequences.
func TestRegistry_MatchesModel_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New(kv.NewMemoryStore(0), WithNotifyOnNoopRemove(rapid.Bool().Draw(t, "noopNotify")))
		notifications := 0
		r.Subscribe(func([]Favorite) { notifications++ })

		var model []int
		expectedNotifications := 0

		t.Repeat(map[string]func(*rapid.T){
			"add": func(t *rapid.T) {
				id := rapid.IntRange(1, 20).Draw(t, "id")
				added, err := r.Add(posts.Post{ID: id, Title: "x"})
				require.NoError(t, err)
				if slices.Contains(model, id) {
					require.False(t, added)
					return
				}
				require.True(t, added)
				model = append([]int{id}, model...)
				expectedNotifications++
			},
			"remove": func(t *rapid.T) {
				id := rapid.IntRange(1, 20).Draw(t, "id")
				require.NoError(t, r.Remove(id))
				before := len(model)
				model = slices.DeleteFunc(model, func(v int) bool { return v == id })
				if len(model) != before || r.notifyNoopRemove {
					expectedNotifications++
				}
			},
			"clear": func(t *rapid.T) {
				require.NoError(t, r.Clear())
				model = nil
				expectedNotifications++
			},
			"": func(t *rapid.T) {
				got := ids(r.List())
				if model == nil {
					require.Empty(t, got)
				} else {
					require.Equal(t, model, got)
				}
				seen := map[int]bool{}
				for _, id := range got {
					require.False(t, seen[id], "duplicate id %d", id)
					seen[id] = true
				}
				require.Equal(t, expectedNotifications, notifications)
			},
		})
	})
}
