package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"retail-hub/models"
)

const (
	productCollection  = "products"
	campaignCollection = "campaigns"
	userCollection     = "users"
)

type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	SKU         string               `bson:"sku"`
	ProductName string               `bson:"productName"`
	Price       primitive.Decimal128 `bson:"price"`
	ImageURL    string               `bson:"imageUrl,omitempty"`
	Category    string               `bson:"category,omitempty"`
	Description string               `bson:"description,omitempty"`
	Revision    int64                `bson:"revision"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type campaignDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	CampaignID    string               `bson:"campaignID"`
	Name          string               `bson:"name"`
	Description   string               `bson:"description,omitempty"`
	StartDate     string               `bson:"startDate"`
	EndDate       string               `bson:"endDate"`
	DiscountType  string               `bson:"discountType"`
	DiscountValue primitive.Decimal128 `bson:"discountValue"`
	Status        string               `bson:"status"`
	Products      []string             `bson:"products"`
	Revision      int64                `bson:"revision"`
	CreatedAt     time.Time            `bson:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt"`
}

type userDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// toDecimal128 converts an amount for storage. Amounts Decimal128 cannot hold
// exactly are rejected instead of being stored rounded or zeroed.
func toDecimal128(field string, d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, models.NewValidationError(field, "amount cannot be stored exactly")
	}
	if back, err := fromDecimal128(v); err != nil || !back.Equal(d) {
		return primitive.Decimal128{}, models.NewValidationError(field, "amount cannot be stored exactly")
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored amount %s is not a number: %w", v.String(), err)
	}
	return d, nil
}

func (d *productDocument) toModel() (models.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return models.Product{}, err
	}
	return models.Product{
		SKU:         d.SKU,
		ProductName: d.ProductName,
		Price:       price,
		ImageURL:    d.ImageURL,
		Category:    d.Category,
		Description: d.Description,
		Revision:    d.Revision,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func (d *campaignDocument) toModel() (models.Campaign, error) {
	value, err := fromDecimal128(d.DiscountValue)
	if err != nil {
		return models.Campaign{}, err
	}
	products := d.Products
	if products == nil {
		products = []string{}
	}
	return models.Campaign{
		CampaignID:    d.CampaignID,
		Name:          d.Name,
		Description:   d.Description,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		DiscountType:  models.DiscountType(d.DiscountType),
		DiscountValue: value,
		Status:        models.CampaignStatus(d.Status),
		Products:      products,
		Revision:      d.Revision,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func mongoError(op, key string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.NewStoreError(op, key, models.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return models.NewStoreError(op, key, models.ErrConflict)
	case mongo.IsNetworkError(err) || mongo.IsTimeout(err):
		return models.NewStoreError(op, key, errors.Join(models.ErrStoreUnavailable, err))
	}
	return models.NewStoreError(op, key, err)
}

// EnsureMongoIndexes creates the unique keys the stores rely on for conflict detection.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]string{
		productCollection:  "sku",
		campaignCollection: "campaignID",
		userCollection:     "email",
	}
	for collection, key := range indexes {
		_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return mongoError("create index", collection, err)
		}
	}
	return nil
}

type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productCollection)}
}

func (r *MongoProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "sku", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mongoError("list products", "", err)
	}
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoError("list products", "", err)
	}

	products := make([]models.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toModel()
		if err != nil {
			return nil, models.NewStoreError("list products", docs[i].SKU, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *MongoProductRepository) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"sku": sku}).Decode(&doc); err != nil {
		return nil, mongoError("get product", sku, err)
	}
	p, err := doc.toModel()
	if err != nil {
		return nil, models.NewStoreError("get product", sku, err)
	}
	return &p, nil
}

func (r *MongoProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	price, err := toDecimal128("price", product.Price)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := productDocument{
		SKU:         product.SKU,
		ProductName: product.ProductName,
		Price:       price,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		Description: product.Description,
		Revision:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoError("create product", product.SKU, err)
	}
	created, err := doc.toModel()
	if err != nil {
		return models.NewStoreError("create product", product.SKU, err)
	}
	*product = created
	return nil
}

func (r *MongoProductRepository) UpdateProduct(ctx context.Context, product *models.Product, expectedRevision int64) error {
	price, err := toDecimal128("price", product.Price)
	if err != nil {
		return err
	}
	filter := bson.M{"sku": product.SKU}
	if expectedRevision != 0 {
		filter["revision"] = expectedRevision
	}
	update := bson.M{
		"$set": bson.M{
			"productName": product.ProductName,
			"price":       price,
			"imageUrl":    product.ImageURL,
			"category":    product.Category,
			"description": product.Description,
			"updatedAt":   time.Now().UTC().Truncate(time.Millisecond),
		},
		"$inc": bson.M{"revision": 1},
	}

	var doc productDocument
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err == nil {
		updated, err := doc.toModel()
		if err != nil {
			return models.NewStoreError("update product", product.SKU, err)
		}
		*product = updated
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) || expectedRevision == 0 {
		return mongoError("update product", product.SKU, err)
	}
	if _, getErr := r.GetProduct(ctx, product.SKU); getErr != nil {
		return getErr
	}
	return models.NewStoreError("update product", product.SKU, models.ErrConflict)
}

func (r *MongoProductRepository) DeleteProduct(ctx context.Context, sku string) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"sku": sku})
	if err != nil {
		return 0, mongoError("delete product", sku, err)
	}
	if result.DeletedCount == 0 {
		return 0, models.NewStoreError("delete product", sku, models.ErrNotFound)
	}
	return result.DeletedCount, nil
}

type MongoCampaignRepository struct {
	coll *mongo.Collection
}

func NewMongoCampaignRepository(db *mongo.Database) *MongoCampaignRepository {
	return &MongoCampaignRepository{coll: db.Collection(campaignCollection)}
}

func (r *MongoCampaignRepository) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "campaignID", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mongoError("list campaigns", "", err)
	}
	var docs []campaignDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoError("list campaigns", "", err)
	}

	campaigns := make([]models.Campaign, 0, len(docs))
	for i := range docs {
		c, err := docs[i].toModel()
		if err != nil {
			return nil, models.NewStoreError("list campaigns", docs[i].CampaignID, err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (r *MongoCampaignRepository) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	var doc campaignDocument
	if err := r.coll.FindOne(ctx, bson.M{"campaignID": id}).Decode(&doc); err != nil {
		return nil, mongoError("get campaign", id, err)
	}
	c, err := doc.toModel()
	if err != nil {
		return nil, models.NewStoreError("get campaign", id, err)
	}
	return &c, nil
}

func (r *MongoCampaignRepository) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	value, err := toDecimal128("discountValue", campaign.DiscountValue)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := campaignDocument{
		CampaignID:    campaign.CampaignID,
		Name:          campaign.Name,
		Description:   campaign.Description,
		StartDate:     campaign.StartDate,
		EndDate:       campaign.EndDate,
		DiscountType:  string(campaign.DiscountType),
		DiscountValue: value,
		Status:        string(campaign.Status),
		Products:      campaign.Products,
		Revision:      1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoError("create campaign", campaign.CampaignID, err)
	}
	created, err := doc.toModel()
	if err != nil {
		return models.NewStoreError("create campaign", campaign.CampaignID, err)
	}
	*campaign = created
	return nil
}

func (r *MongoCampaignRepository) UpdateCampaign(ctx context.Context, campaign *models.Campaign, expectedRevision int64) error {
	value, err := toDecimal128("discountValue", campaign.DiscountValue)
	if err != nil {
		return err
	}
	filter := bson.M{"campaignID": campaign.CampaignID}
	if expectedRevision != 0 {
		filter["revision"] = expectedRevision
	}
	update := bson.M{
		"$set": bson.M{
			"name":          campaign.Name,
			"description":   campaign.Description,
			"startDate":     campaign.StartDate,
			"endDate":       campaign.EndDate,
			"discountType":  string(campaign.DiscountType),
			"discountValue": value,
			"status":        string(campaign.Status),
			"products":      campaign.Products,
			"updatedAt":     time.Now().UTC().Truncate(time.Millisecond),
		},
		"$inc": bson.M{"revision": 1},
	}

	var doc campaignDocument
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err == nil {
		updated, err := doc.toModel()
		if err != nil {
			return models.NewStoreError("update campaign", campaign.CampaignID, err)
		}
		*campaign = updated
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) || expectedRevision == 0 {
		return mongoError("update campaign", campaign.CampaignID, err)
	}
	if _, getErr := r.GetCampaign(ctx, campaign.CampaignID); getErr != nil {
		return getErr
	}
	return models.NewStoreError("update campaign", campaign.CampaignID, models.ErrConflict)
}

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	_, err := r.coll.InsertOne(ctx, userDocument{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		Role:      user.Role,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return mongoError("create user", user.Email, err)
	}
	user.CreatedAt, user.UpdatedAt = now, now
	return nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	filter := bson.M{"email": bson.M{"$regex": "^" + regexp.QuoteMeta(email) + "$", "$options": "i"}}
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mongoError("find user", email, err)
	}
	return &models.User{
		ID:        doc.ID,
		Email:     doc.Email,
		Password:  doc.Password,
		Role:      doc.Role,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
