package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/memory"
	"github.com/phrazzld/lunchvote/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, rs *memory.RestaurantStore, name string, meals ...*domain.Meal) *domain.Restaurant {
	t.Helper()
	r := domain.NewRestaurant(name)
	for _, m := range meals {
		r.AddMeal(m)
	}
	require.NoError(t, rs.Save(context.Background(), r))
	return r
}

func TestRestaurantStore_SaveAssignsIDsAndLinksMeals(t *testing.T) {
	db := memory.New(nil)
	rs := db.Restaurants()

	r := seed(t, rs, "Marcellis", domain.NewMeal("Khinkali", domain.MealCategoryMain, 500))

	assert.NotZero(t, r.ID)
	require.Len(t, r.Meals, 1)
	assert.NotZero(t, r.Meals[0].ID)
	assert.Equal(t, r.ID, r.Meals[0].RestaurantID)

	loaded, err := rs.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)
	assert.NotSame(t, r, loaded)
}

func TestRestaurantStore_Uniqueness(t *testing.T) {
	ctx := context.Background()
	db := memory.New(nil)
	rs := db.Restaurants()

	seed(t, rs, "Marcellis", domain.NewMeal("Khinkali", domain.MealCategoryMain, 500))

	err := rs.Save(ctx, domain.NewRestaurant("Marcellis"))
	assert.ErrorIs(t, err, store.ErrRestaurantNameExists)

	// the same dish is fine in another restaurant
	seed(t, rs, "Phalli", domain.NewMeal("Khinkali", domain.MealCategoryMain, 450))

	twice := domain.NewRestaurant("Twice")
	twice.AddMeal(domain.NewMeal("Tea", domain.MealCategoryDrink, 1))
	twice.AddMeal(domain.NewMeal("Tea", domain.MealCategoryDrink, 2))
	assert.ErrorIs(t, rs.Save(ctx, twice), store.ErrMealExists)
	assert.Zero(t, twice.ID)

	exists, err := rs.ExistsByID(ctx, 3)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRestaurantStore_UpdateReplacesMeals(t *testing.T) {
	ctx := context.Background()
	db := memory.New(nil)
	rs := db.Restaurants()
	ms := db.Meals()

	r := seed(t, rs, "Marcellis",
		domain.NewMeal("Khinkali", domain.MealCategoryMain, 500),
		domain.NewMeal("Tea", domain.MealCategoryDrink, 100))
	oldMealIDs := []int64{r.Meals[0].ID, r.Meals[1].ID}

	r.ClearMeals()
	r.AddMeal(domain.NewMeal("Khinkali", domain.MealCategoryMain, 550))
	r.Name = "Marcellis 2"
	require.NoError(t, rs.Save(ctx, r))

	for _, id := range oldMealIDs {
		exists, err := ms.ExistsByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, exists, "orphaned meal %d should be deleted", id)
	}

	loaded, err := rs.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marcellis 2", loaded.Name)
	require.Len(t, loaded.Meals, 1)
	assert.Equal(t, 550, loaded.Meals[0].Price)
}

func TestRestaurantStore_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	db := memory.New(nil)
	rs := db.Restaurants()

	a := seed(t, rs, "A")
	b := seed(t, rs, "B", domain.NewMeal("Soup", domain.MealCategorySoup, 1))

	assert.ErrorIs(t, rs.Save(ctx, &domain.Restaurant{ID: 99, Name: "Ghost"}), store.ErrRestaurantNotFound)

	a.Name = "B"
	assert.ErrorIs(t, rs.Save(ctx, a), store.ErrRestaurantNameExists)

	a.Name = "A"
	a.Meals = []*domain.Meal{b.Meals[0].Clone()}
	assert.ErrorIs(t, rs.Save(ctx, a), store.ErrMealNotFound, "meals of another restaurant cannot be adopted")
}

func TestRestaurantStore_FindAllPaged(t *testing.T) {
	ctx := context.Background()
	db := memory.New(nil)
	rs := db.Restaurants()

	for _, name := range []string{"B", "A", "C"} {
		seed(t, rs, name)
	}
	c, err := rs.FindAllPaged(ctx, domain.PageRequest{Size: 1, SortField: domain.SortByName, Direction: domain.SortDesc})
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "C", c[0].Name)

	page := domain.PageRequest{Page: 1, Size: 2, SortField: domain.SortByName, Direction: domain.SortAsc}
	got, err := rs.FindAllPaged(ctx, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Name)
	assert.NotNil(t, got[0].Meals)

	page.Page = 5
	got, err = rs.FindAllPaged(ctx, page)
	require.NoError(t, err)
	assert.Empty(t, got)

	all, err := rs.FindAllPaged(ctx, domain.DefaultPageRequest())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRestaurantStore_FindAllPagedHugePage(t *testing.T) {
	ctx := context.Background()
	rs := memory.New(nil).Restaurants()
	seed(t, rs, "Marcellis")

	page := domain.DefaultPageRequest()
	page.Page = 5_000_000_000

	var got []*domain.Restaurant
	require.NotPanics(t, func() {
		var err error
		got, err = rs.FindAllPaged(ctx, page)
		require.NoError(t, err)
	})
	assert.Empty(t, got)
}

func TestRestaurantStore_VotesAreAtomic(t *testing.T) {
	ctx := context.Background()
	db := memory.New(nil)
	rs := db.Restaurants()
	r := seed(t, rs, "Popular")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rs.IncrementVotes(ctx, r.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := rs.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.Votes)

	_, err = rs.IncrementVotes(ctx, 999)
	assert.ErrorIs(t, err, store.ErrRestaurantNotFound)

	require.NoError(t, rs.ResetVotes(ctx))
	loaded, err = rs.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Zero(t, loaded.Votes)
}

func TestRestaurantStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := memory.New(nil)
	rs := db.Restaurants()
	ms := db.Meals()

	r := seed(t, rs, "Gone", domain.NewMeal("Soup", domain.MealCategorySoup, 1))
	mealID := r.Meals[0].ID

	require.NoError(t, rs.Delete(ctx, r.ID))
	assert.ErrorIs(t, rs.Delete(ctx, r.ID), store.ErrRestaurantNotFound)

	_, err := ms.GetByID(ctx, mealID)
	assert.ErrorIs(t, err, store.ErrMealNotFound)

	seed(t, rs, "Other", domain.NewMeal("Soup", domain.MealCategorySoup, 1))
	require.NoError(t, rs.DeleteAll(ctx))
	all, err := rs.FindAllPaged(ctx, domain.DefaultPageRequest())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMealStore(t *testing.T) {
	ctx := context.Background()
	db := memory.New(nil)
	rs := db.Restaurants()
	ms := db.Meals()

	r := seed(t, rs, "Marcellis", domain.NewMeal("Khinkali", domain.MealCategoryMain, 500))

	m := &domain.Meal{Name: "Tea", Category: domain.MealCategoryDrink, Price: 100, RestaurantID: r.ID}
	require.NoError(t, ms.Save(ctx, m))
	assert.NotZero(t, m.ID)

	dup := &domain.Meal{Name: "Tea", Category: domain.MealCategoryDrink, RestaurantID: r.ID}
	assert.ErrorIs(t, ms.Save(ctx, dup), store.ErrMealExists)

	orphan := &domain.Meal{Name: "Tea", Category: domain.MealCategoryDrink, RestaurantID: 404}
	assert.ErrorIs(t, ms.Save(ctx, orphan), store.ErrRestaurantNotFound)
	assert.ErrorIs(t, ms.Save(ctx, domain.NewMeal("x", domain.MealCategoryMain, 1)), store.ErrInvalidEntity)

	m.Price = 120
	require.NoError(t, ms.Save(ctx, m))
	loaded, err := ms.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, loaded.Price)

	m.Name = "Khinkali"
	m.Category = domain.MealCategoryMain
	assert.ErrorIs(t, ms.Save(ctx, m), store.ErrMealExists)

	meals, err := ms.FindByRestaurantID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Less(t, meals[0].ID, meals[1].ID)

	require.NoError(t, ms.Delete(ctx, meals[0].ID))
	assert.ErrorIs(t, ms.Delete(ctx, meals[0].ID), store.ErrMealNotFound)

	require.NoError(t, ms.DeleteByRestaurantID(ctx, r.ID))
	meals, err = ms.FindByRestaurantID(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, meals)

	require.NoError(t, ms.DeleteAll(ctx))
}
