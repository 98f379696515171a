package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/skycastapp/skycast-api/internal/domain"
	"github.com/skycastapp/skycast-api/internal/usecase"
)

// memFavoriteRepo is an in-memory FavoriteRepository that mimics the
// postgres behavior, including the unique-index duplicate error.
type memFavoriteRepo struct {
	favs   []*domain.FavoriteCity
	nextID int
}

func (r *memFavoriteRepo) Create(_ context.Context, fav *domain.FavoriteCity) (*domain.FavoriteCity, error) {
	for _, f := range r.favs {
		if f.UserID == fav.UserID && f.CityName == fav.CityName {
			return nil, domain.ErrDuplicateFavorite
		}
	}
	r.nextID++
	out := *fav
	out.ID = fmt.Sprintf("fav-%d", r.nextID)
	out.CreatedAt = time.Now()
	r.favs = append(r.favs, &out)
	return &out, nil
}

func (r *memFavoriteRepo) FindByCity(_ context.Context, userID, cityName, country string) (*domain.FavoriteCity, error) {
	for _, f := range r.favs {
		if f.UserID == userID && f.CityName == cityName && (country == "" || f.Country == country) {
			return f, nil
		}
	}
	return nil, domain.ErrFavoriteNotFound
}

func (r *memFavoriteRepo) ListByUser(_ context.Context, userID string) ([]*domain.FavoriteCity, error) {
	var out []*domain.FavoriteCity
	for _, f := range r.favs {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFavoriteRepo) DeleteOwned(_ context.Context, id, userID string) error {
	for i, f := range r.favs {
		if f.ID == id && f.UserID == userID {
			r.favs = append(r.favs[:i], r.favs[i+1:]...)
			return nil
		}
	}
	return domain.ErrFavoriteNotFound
}

func (r *memFavoriteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.favs)), nil
}

func lahoreInput(userID string) usecase.AddFavoriteInput {
	lat, lon := 31.5204, 74.3587
	return usecase.AddFavoriteInput{
		UserID:   userID,
		CityName: "Lahore",
		Country:  "PK",
		Lat:      &lat,
		Lon:      &lon,
	}
}

func TestAdd_EmptyCityName_Fails(t *testing.T) {
	uc := usecase.NewFavoriteUsecase(&memFavoriteRepo{})

	_, _, err := uc.Add(context.Background(), usecase.AddFavoriteInput{UserID: "u1", CityName: "  "})
	if !errors.Is(err, domain.ErrCityNameRequired) {
		t.Errorf("want ErrCityNameRequired, got %v", err)
	}
}

func TestAdd_NewCity_ReturnsCreated(t *testing.T) {
	repo := &memFavoriteRepo{}
	uc := usecase.NewFavoriteUsecase(repo)

	fav, created, err := uc.Add(context.Background(), lahoreInput("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if fav.ID == "" {
		t.Error("favorite has no id")
	}
	if fav.CityName != "Lahore" || fav.Country != "PK" {
		t.Errorf("stored %q/%q, want Lahore/PK", fav.CityName, fav.Country)
	}
}

func TestAdd_SameCityTwice_IsIdempotent(t *testing.T) {
	repo := &memFavoriteRepo{}
	uc := usecase.NewFavoriteUsecase(repo)
	ctx := context.Background()

	if _, _, err := uc.Add(ctx, lahoreInput("u1")); err != nil {
		t.Fatalf("first add: %v", err)
	}

	fav, created, err := uc.Add(ctx, lahoreInput("u1"))
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if created {
		t.Error("created = true on repeat add, want false")
	}
	if fav == nil {
		t.Fatal("repeat add returned no favorite")
	}

	list, _ := uc.List(ctx, "u1")
	if len(list) != 1 {
		t.Errorf("list has %d records after duplicate add, want 1", len(list))
	}
}

// racingFavoriteRepo makes the pre-insert lookup miss exactly once, so the
// insert runs into the unique index as if a concurrent add had won.
type racingFavoriteRepo struct {
	memFavoriteRepo
	missNextLookup bool
}

func (r *racingFavoriteRepo) FindByCity(ctx context.Context, userID, cityName, country string) (*domain.FavoriteCity, error) {
	if r.missNextLookup {
		r.missNextLookup = false
		return nil, domain.ErrFavoriteNotFound
	}
	return r.memFavoriteRepo.FindByCity(ctx, userID, cityName, country)
}

func TestAdd_LostInsertRace_ResolvesToExisting(t *testing.T) {
	repo := &racingFavoriteRepo{}
	uc := usecase.NewFavoriteUsecase(repo)
	ctx := context.Background()

	if _, _, err := uc.Add(ctx, lahoreInput("u1")); err != nil {
		t.Fatalf("setup add: %v", err)
	}

	repo.missNextLookup = true
	fav, created, err := uc.Add(ctx, lahoreInput("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("created = true after losing the race, want false")
	}
	if fav == nil || fav.CityName != "Lahore" {
		t.Errorf("got %+v, want the winner's record", fav)
	}

	list, _ := uc.List(ctx, "u1")
	if len(list) != 1 {
		t.Errorf("list has %d records, want 1", len(list))
	}
}

func TestRemove_NotOwned_ReturnsConflatedErrorAndLeavesStore(t *testing.T) {
	repo := &memFavoriteRepo{}
	uc := usecase.NewFavoriteUsecase(repo)
	ctx := context.Background()

	fav, _, err := uc.Add(ctx, lahoreInput("owner"))
	if err != nil {
		t.Fatalf("setup add: %v", err)
	}

	// Another user tries to delete the owner's favorite.
	err = uc.Remove(ctx, "intruder", fav.ID)
	if !errors.Is(err, domain.ErrFavoriteNotFound) {
		t.Errorf("want ErrFavoriteNotFound, got %v", err)
	}

	// A plain missing id yields the identical error.
	err = uc.Remove(ctx, "owner", "no-such-id")
	if !errors.Is(err, domain.ErrFavoriteNotFound) {
		t.Errorf("want ErrFavoriteNotFound for missing id, got %v", err)
	}

	list, _ := uc.List(ctx, "owner")
	if len(list) != 1 {
		t.Errorf("store changed: %d records, want 1", len(list))
	}
}

func TestRemove_Owned_Deletes(t *testing.T) {
	repo := &memFavoriteRepo{}
	uc := usecase.NewFavoriteUsecase(repo)
	ctx := context.Background()

	fav, _, _ := uc.Add(ctx, lahoreInput("u1"))
	if err := uc.Remove(ctx, "u1", fav.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, _ := uc.List(ctx, "u1")
	if len(list) != 0 {
		t.Errorf("list has %d records after remove, want 0", len(list))
	}
}

func TestList_NoFavorites_ReturnsEmptyNotError(t *testing.T) {
	uc := usecase.NewFavoriteUsecase(&memFavoriteRepo{})

	list, err := uc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("list = %v, want empty", list)
	}
}

func TestCheck_ExistsAndMissing(t *testing.T) {
	repo := &memFavoriteRepo{}
	uc := usecase.NewFavoriteUsecase(repo)
	ctx := context.Background()

	if _, _, err := uc.Add(ctx, lahoreInput("u1")); err != nil {
		t.Fatalf("setup add: %v", err)
	}

	exists, err := uc.Check(ctx, "u1", "Lahore", "PK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("exists = false, want true")
	}

	exists, err = uc.Check(ctx, "u1", "Paris", "")
	if err != nil {
		t.Fatalf("missing city must not error: %v", err)
	}
	if exists {
		t.Error("exists = true for unsaved city")
	}

	if _, err = uc.Check(ctx, "u1", "", ""); !errors.Is(err, domain.ErrCityNameRequired) {
		t.Errorf("want ErrCityNameRequired, got %v", err)
	}
}
