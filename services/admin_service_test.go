package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-hub/models"
)

func TestAdminOperationsRequireAdmin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustCreateProduct("SKU1", "Mug", "10", "")
	p := customerPrincipal

	_, err := env.admin.CreateProduct(ctx, p, models.CreateProductRequest{ProductName: "X", Price: decimalPtr("1")})
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = env.admin.UpdateProduct(ctx, p, "SKU1", models.UpdateProductRequest{ProductName: strPtr("Y")})
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = env.admin.SaveProduct(ctx, p, "", models.UpdateProductRequest{ProductName: strPtr("Y"), Price: decimalPtr("1")})
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = env.admin.DeleteProduct(ctx, p, "SKU1", true)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = env.admin.UploadProductImage(ctx, p, "SKU1", &multipart.FileHeader{Filename: "mug.png"})
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = env.admin.CreateCampaign(ctx, p, validCampaignRequest())
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = env.admin.SaveCampaign(ctx, p, validCampaignRequest())
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = env.admin.Workspace(ctx, p, "")
	assert.ErrorIs(t, err, models.ErrForbidden)

	stored, err := env.products.GetProduct(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "Mug", stored.ProductName)
	campaigns, err := env.campaigns.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Empty(t, campaigns)
}

func TestAdminDeleteRequiresConfirmation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustCreateProduct("SKU1", "Mug", "10", "")

	_, err := env.admin.DeleteProduct(ctx, adminPrincipal, "SKU1", false)
	require.ErrorIs(t, err, models.ErrConfirmationRequired)

	_, err = env.products.GetProduct(ctx, "SKU1")
	require.NoError(t, err)

	deleted, err := env.admin.DeleteProduct(ctx, adminPrincipal, "SKU1", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestAdminSaveProductBranches(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.admin.SaveProduct(ctx, adminPrincipal, "", models.UpdateProductRequest{
		ProductName: strPtr("Green Teapot"),
		Price:       decimalPtr("30"),
		Category:    strPtr("Kitchen"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Saved)
	assert.Regexp(t, `^GREENTEA-\d{4}$`, created.Saved.SKU)
	assert.Len(t, created.Products, 1)

	sku := created.Saved.SKU
	updated, err := env.admin.SaveProduct(ctx, adminPrincipal, sku, models.UpdateProductRequest{
		SKU:   "IGNORED",
		Price: decimalPtr("25"),
	})
	require.NoError(t, err)
	assert.Equal(t, sku, updated.Saved.SKU)
	assertPrice(t, "25", updated.Saved.Price)
	assert.Equal(t, "Green Teapot", updated.Saved.ProductName)
	require.Len(t, updated.Products, 1)
	assertPrice(t, "25", updated.Products[0].Price)
}

func TestAdminSaveCampaignReselectsSaved(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first := validCampaignRequest()
	first.CampaignID = ""
	ws, err := env.admin.SaveCampaign(ctx, adminPrincipal, first)
	require.NoError(t, err)
	require.Len(t, ws.Campaigns, 1)
	firstID := ws.Selected.CampaignID
	assert.Regexp(t, `^CMP\d+$`, firstID)

	second := validCampaignRequest()
	second.Name = "Winter Sale"
	ws, err = env.admin.SaveCampaign(ctx, adminPrincipal, second)
	require.NoError(t, err)
	require.Len(t, ws.Campaigns, 2)
	assert.Equal(t, "Winter Sale", ws.Selected.Name)
	secondID := ws.Selected.CampaignID
	assert.NotEqual(t, firstID, secondID)

	edit := validCampaignRequest()
	edit.CampaignID = firstID
	edit.Name = "Summer Sale v2"
	ws, err = env.admin.SaveCampaign(ctx, adminPrincipal, edit)
	require.NoError(t, err)
	assert.Equal(t, firstID, ws.Selected.CampaignID)
	assert.Equal(t, "Summer Sale v2", ws.Selected.Name)
	assert.Equal(t, int64(2), ws.Selected.Revision)
}

func TestAdminWorkspaceSelection(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ws, err := env.admin.Workspace(ctx, adminPrincipal, "anything")
	require.NoError(t, err)
	assert.Empty(t, ws.Campaigns)
	assert.Equal(t, models.NewCampaignTemplate(), ws.Selected)
	assert.Equal(t, models.DiscountPercentage, ws.Selected.DiscountType)
	assert.True(t, ws.Selected.DiscountValue.IsZero())

	a := validCampaignRequest()
	a.CampaignID = "A"
	env.mustCreateCampaign(a)
	b := validCampaignRequest()
	b.CampaignID = "B"
	env.mustCreateCampaign(b)

	ws, err = env.admin.Workspace(ctx, adminPrincipal, "B")
	require.NoError(t, err)
	assert.Equal(t, "B", ws.Selected.CampaignID)

	ws, err = env.admin.Workspace(ctx, adminPrincipal, "GONE")
	require.NoError(t, err)
	assert.Equal(t, "A", ws.Selected.CampaignID)

	ws, err = env.admin.Workspace(ctx, adminPrincipal, "")
	require.NoError(t, err)
	assert.Equal(t, "A", ws.Selected.CampaignID)
}

func TestAdminUploadProductImage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustCreateProduct("SKU1", "Mug", "10", "")

	updated, err := env.admin.UploadProductImage(ctx, adminPrincipal, "SKU1", &multipart.FileHeader{Filename: "mug.png"})
	require.NoError(t, err)
	assert.Equal(t, env.images.url, updated.ImageURL)
	assert.Equal(t, []string{"SKU1"}, env.images.saved)

	_, err = env.admin.UploadProductImage(ctx, adminPrincipal, "MISSING", &multipart.FileHeader{Filename: "x.png"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Len(t, env.images.saved, 1)
}

func TestAdminUploadProductImageStoreFailure(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustCreateProduct("SKU1", "Mug", "10", "")
	env.images.err = errors.New("cdn down")

	_, err := env.admin.UploadProductImage(ctx, adminPrincipal, "SKU1", &multipart.FileHeader{Filename: "mug.png"})
	require.Error(t, err)

	stored, err := env.products.GetProduct(ctx, "SKU1")
	require.NoError(t, err)
	assert.Empty(t, stored.ImageURL)
}
