package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/dinein/app/models"
)

const (
	menuCollection  = "menuItems"
	orderCollection = "orders"
)

type menuDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	PriceAC    float64            `bson:"priceAC"`
	PriceNonAC float64            `bson:"priceNonAC"`
	Price      float64            `bson:"price,omitempty"`
	Category   string             `bson:"category,omitempty"`
	Image      string             `bson:"image,omitempty"`
}

func newMenuDoc(m models.MenuItem) menuDoc {
	return menuDoc{
		Name:       m.Name,
		PriceAC:    m.PriceAC,
		PriceNonAC: m.PriceNonAC,
		Price:      m.Price,
		Category:   m.Category,
		Image:      m.Image,
	}
}

func (d menuDoc) model() models.MenuItem {
	return models.MenuItem{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		PriceAC:    d.PriceAC,
		PriceNonAC: d.PriceNonAC,
		Price:      d.Price,
		Category:   d.Category,
		Image:      d.Image,
	}
}

type lineDoc struct {
	MenuItemID string  `bson:"menuItemId"`
	Name       string  `bson:"name"`
	Price      float64 `bson:"price"`
	Quantity   int     `bson:"quantity"`
	Notes      string  `bson:"notes"`
}

type orderDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TableNumber string             `bson:"tableNumber"`
	IsAC        bool               `bson:"isAC"`
	Items       []lineDoc          `bson:"items"`
	Total       float64            `bson:"total"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func newOrderDoc(o models.Order) orderDoc {
	items := make([]lineDoc, len(o.Items))
	for i, l := range o.Items {
		items[i] = lineDoc(l)
	}
	return orderDoc{
		TableNumber: o.TableNumber,
		IsAC:        o.IsAC,
		Items:       items,
		Total:       o.Total,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

func (d orderDoc) model() models.Order {
	items := make([]models.LineItem, len(d.Items))
	for i, l := range d.Items {
		items[i] = models.LineItem(l)
	}
	return models.Order{
		ID:          d.ID.Hex(),
		TableNumber: d.TableNumber,
		IsAC:        d.IsAC,
		Items:       items,
		Total:       d.Total,
		Status:      models.OrderStatus(d.Status),
		CreatedAt:   d.CreatedAt,
	}
}

// objectID parses an ID from the API. A malformed ID cannot match any
// document, so it reads as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrNotFound
	}
	return oid, nil
}

// ─── Catalog ─────────────────────────────────────────────────────────────────

type MongoCatalog struct {
	col *mongo.Collection
}

func NewMongoCatalog(db *mongo.Database) *MongoCatalog {
	return &MongoCatalog{col: db.Collection(menuCollection)}
}

func (s *MongoCatalog) List(ctx context.Context) ([]models.MenuItem, error) {
	cur, err := s.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("menuItems: find: %w", err)
	}

	var docs []menuDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("menuItems: decode: %w", err)
	}

	items := make([]models.MenuItem, len(docs))
	for i, d := range docs {
		items[i] = d.model()
	}
	return items, nil
}

func (s *MongoCatalog) Create(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	res, err := s.col.InsertOne(ctx, newMenuDoc(item))
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("menuItems: insert: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.MenuItem{}, fmt.Errorf("menuItems: unexpected id type %T", res.InsertedID)
	}
	item.ID = oid.Hex()
	return item, nil
}

func (s *MongoCatalog) Update(ctx context.Context, item models.MenuItem) error {
	oid, err := objectID(item.ID)
	if err != nil {
		return err
	}

	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": oid}, newMenuDoc(item))
	if err != nil {
		return fmt.Errorf("menuItems: replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MongoCatalog) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("menuItems: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ─── Orders ──────────────────────────────────────────────────────────────────

type MongoOrders struct {
	col *mongo.Collection
}

func NewMongoOrders(db *mongo.Database) *MongoOrders {
	return &MongoOrders{col: db.Collection(orderCollection)}
}

// EnsureIndexes creates the createdAt index the summary query walks.
func (s *MongoOrders) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("orders: create index: %w", err)
	}
	return nil
}

func (s *MongoOrders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	res, err := s.col.InsertOne(ctx, newOrderDoc(order))
	if err != nil {
		return models.Order{}, fmt.Errorf("orders: insert: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.Order{}, fmt.Errorf("orders: unexpected id type %T", res.InsertedID)
	}
	order.ID = oid.Hex()
	return order, nil
}

func (s *MongoOrders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if !models.CanTransition(models.StatusPending, status) {
		return models.ErrInvalidTransition
	}

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(models.StatusPending)},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("orders: update status: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("orders: find: %w", err)
	}
	return models.ErrInvalidTransition
}

func (s *MongoOrders) ListSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	cur, err := s.col.Find(ctx,
		bson.M{"createdAt": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("orders: find: %w", err)
	}

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}

	orders := make([]models.Order, len(docs))
	for i, d := range docs {
		orders[i] = d.model()
	}
	return orders, nil
}
