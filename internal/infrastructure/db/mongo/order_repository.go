package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{db: db, col: db.Collection(collectionOrders)}
}

type orderDoc struct {
	ID          int64      `bson:"_id"`
	ClientName  string     `bson:"client_name"`
	ClientPhone string     `bson:"client_phone"`
	Address     string     `bson:"address"`
	Area        float64    `bson:"area"`
	Rooms       int        `bson:"rooms"`
	WallType    string     `bson:"wall_type,omitempty"`
	Status      string     `bson:"status"`
	Details     detailsDoc `bson:"details"`
	CreatedAt   time.Time  `bson:"created_at"`
}

type detailsDoc struct {
	BOM        []bomDoc      `bson:"bom"`
	Financials financialsDoc `bson:"financials"`
}

type bomDoc struct {
	Name     string  `bson:"name"`
	Quantity float64 `bson:"quantity"`
	Unit     string  `bson:"unit"`
}

type financialsDoc struct {
	FinalPrice    float64      `bson:"final_price"`
	TotalExpenses float64      `bson:"total_expenses"`
	NetProfit     float64      `bson:"net_profit"`
	Expenses      []expenseDoc `bson:"expenses"`
}

type expenseDoc struct {
	ID       string    `bson:"id"`
	Amount   float64   `bson:"amount"`
	Category string    `bson:"category"`
	Comment  string    `bson:"comment,omitempty"`
	Date     time.Time `bson:"date"`
}

// Create inserts a new order document under the next numeric id.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionOrders)
	if err != nil {
		return nil, err
	}
	doc := toOrderDoc(order)
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns orders newest first, optionally filtered by status.
func (r *OrderRepository) List(ctx context.Context, f ports.ListOrdersFilter) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(f.Offset))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toDomain())
	}
	return out, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes used by List.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toOrderDoc(o *domain.Order) orderDoc {
	doc := orderDoc{
		ID:          o.ID,
		ClientName:  o.ClientName,
		ClientPhone: o.ClientPhone,
		Address:     o.Address,
		Area:        o.Area,
		Rooms:       o.Rooms,
		WallType:    string(o.WallType),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt.UTC(),
		Details: detailsDoc{
			BOM: make([]bomDoc, 0, len(o.Details.BOM)),
			Financials: financialsDoc{
				FinalPrice:    o.Details.Financials.FinalPrice,
				TotalExpenses: o.Details.Financials.TotalExpenses,
				NetProfit:     o.Details.Financials.NetProfit,
				Expenses:      make([]expenseDoc, 0, len(o.Details.Financials.Expenses)),
			},
		},
	}
	for _, b := range o.Details.BOM {
		doc.Details.BOM = append(doc.Details.BOM, bomDoc(b))
	}
	for _, e := range o.Details.Financials.Expenses {
		doc.Details.Financials.Expenses = append(doc.Details.Financials.Expenses, expenseDoc(e))
	}
	return doc
}

func (d orderDoc) toDomain() *domain.Order {
	o := &domain.Order{
		ID:          d.ID,
		ClientName:  d.ClientName,
		ClientPhone: d.ClientPhone,
		Address:     d.Address,
		Area:        d.Area,
		Rooms:       d.Rooms,
		WallType:    domain.WallType(d.WallType),
		Status:      domain.OrderStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		Details: domain.OrderDetails{
			BOM: make([]domain.BOMItem, 0, len(d.Details.BOM)),
			Financials: domain.Financials{
				FinalPrice:    d.Details.Financials.FinalPrice,
				TotalExpenses: d.Details.Financials.TotalExpenses,
				NetProfit:     d.Details.Financials.NetProfit,
				Expenses:      make([]domain.Expense, 0, len(d.Details.Financials.Expenses)),
			},
		},
	}
	for _, b := range d.Details.BOM {
		o.Details.BOM = append(o.Details.BOM, domain.BOMItem(b))
	}
	for _, e := range d.Details.Financials.Expenses {
		o.Details.Financials.Expenses = append(o.Details.Financials.Expenses, domain.Expense(e))
	}
	return o
}
