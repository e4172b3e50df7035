package product

import (
	"context"
	"testing"

	"dressup/internal/database"
	"dressup/internal/domain"
	"dressup/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

/* ==================== SQLITE TEST DB ==================== */

func testDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.Category{},
		&domain.ProductCategory{},
		&domain.ProductRating{},
		&domain.ProductReview{},
	))

	return db
}

func testService(t *testing.T) (*Service, *gorm.DB) {
	db := testDB(t)
	return NewService(repository.NewProductRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB) *domain.User {
	u := &domain.User{
		Email:       uuid.NewString() + "@example.com",
		IsActive:    true,
		IsActivated: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

/* ==================== TESTS ==================== */

func TestService_CreateAndGet(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	ctx := context.Background()

	p, err := service.Create(ctx, owner.ID, CreateProductRequest{
		Name:      "Linen shirt",
		Brand:     "Uniqlo",
		ImageURLs: []string{"/static/a.jpg"},
	})
	require.NoError(t, err)
	assert.False(t, p.IsPublic, "new products start private")

	got, err := service.Get(ctx, p.ID, &owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linen shirt", got.Name)
	assert.Equal(t, []string{"/static/a.jpg"}, got.ImageURLs)
}

func TestService_Get_PrivateHiddenFromOthers(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	stranger := seedUser(t, db)
	ctx := context.Background()

	p, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: "Private coat"})
	require.NoError(t, err)

	_, err = service.Get(ctx, p.ID, &stranger.ID)
	assert.ErrorIs(t, err, ErrNotProductOwner)

	_, err = service.Get(ctx, p.ID, nil)
	assert.ErrorIs(t, err, ErrNotProductOwner)
}

func TestService_Update_OwnerOnly(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	stranger := seedUser(t, db)
	ctx := context.Background()

	p, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: "Dress"})
	require.NoError(t, err)

	isPublic := true
	_, err = service.Update(ctx, p.ID, stranger.ID, UpdateProductRequest{IsPublic: &isPublic})
	assert.ErrorIs(t, err, ErrNotProductOwner)

	updated, err := service.Update(ctx, p.ID, owner.ID, UpdateProductRequest{IsPublic: &isPublic})
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)
}

func TestService_Delete(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	ctx := context.Background()

	p, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: "Skirt"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, p.ID, owner.ID))

	_, err = service.Get(ctx, p.ID, &owner.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_ListPublic_SearchAndPagination(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	ctx := context.Background()

	isPublic := true
	for _, name := range []string{"Denim jacket", "Denim jeans", "Silk scarf"} {
		p, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: name})
		require.NoError(t, err)
		_, err = service.Update(ctx, p.ID, owner.ID, UpdateProductRequest{IsPublic: &isPublic})
		require.NoError(t, err)
	}
	// private products never show up in the public list
	_, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: "Denim secret"})
	require.NoError(t, err)

	result, err := service.ListPublic(ctx, ListQuery{SearchKeyword: "Denim", Size: 10}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)
	assert.Len(t, result.Items, 2)

	paged, err := service.ListPublic(ctx, ListQuery{Size: 2}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, paged.Total)
	assert.Len(t, paged.Items, 2)
}

func TestService_ListMine_IncludesPrivate(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	other := seedUser(t, db)
	ctx := context.Background()

	_, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: "Mine"})
	require.NoError(t, err)
	_, err = service.Create(ctx, other.ID, CreateProductRequest{Name: "Theirs"})
	require.NoError(t, err)

	result, err := service.ListMine(ctx, ListQuery{Size: 10}, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)
	assert.Equal(t, "Mine", result.Items[0].Name)
}

func TestService_Rate_UpsertsScore(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	ctx := context.Background()

	p, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: "Boots"})
	require.NoError(t, err)

	assert.ErrorIs(t, service.Rate(ctx, p.ID, owner.ID, 0), ErrInvalidScore)
	assert.ErrorIs(t, service.Rate(ctx, p.ID, owner.ID, 6), ErrInvalidScore)

	require.NoError(t, service.Rate(ctx, p.ID, owner.ID, 3))
	require.NoError(t, service.Rate(ctx, p.ID, owner.ID, 5))

	got, err := service.Get(ctx, p.ID, &owner.ID)
	require.NoError(t, err)
	if assert.NotNil(t, got.MyRating) {
		assert.Equal(t, 5, *got.MyRating)
	}

	var count int64
	require.NoError(t, db.Model(&domain.ProductRating{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "re-rating keeps a single row")
}

func TestService_Reviews_OnePerUser(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	ctx := context.Background()

	p, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: "Hat"})
	require.NoError(t, err)

	_, err = service.CreateReview(ctx, p.ID, owner.ID, "nice fit")
	require.NoError(t, err)

	_, err = service.CreateReview(ctx, p.ID, owner.ID, "second try")
	assert.ErrorIs(t, err, ErrReviewAlreadyExists)

	updated, err := service.UpdateReview(ctx, p.ID, owner.ID, "even better after wash")
	require.NoError(t, err)
	assert.Equal(t, "even better after wash", updated.Content)

	reviews, err := service.ListReviews(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "even better after wash", reviews[0].Content)
}

func TestService_UpdateReview_NotFound(t *testing.T) {
	service, db := testService(t)
	owner := seedUser(t, db)
	ctx := context.Background()

	p, err := service.Create(ctx, owner.ID, CreateProductRequest{Name: "Bag"})
	require.NoError(t, err)

	_, err = service.UpdateReview(ctx, p.ID, owner.ID, "never wrote one")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
