package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"domoreserva/internal/domain/shared/money"
	domainunits "domoreserva/internal/domain/units"
)

const unitCollection = "units"

type UnitRepository struct {
	col *mongo.Collection
}

func NewUnitRepository(db *mongo.Database) *UnitRepository {
	return &UnitRepository{col: db.Collection(unitCollection)}
}

func (r *UnitRepository) ByID(ctx context.Context, id domainunits.UnitID) (*domainunits.Unit, error) {
	var doc unitDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainunits.ErrUnitNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *UnitRepository) List(ctx context.Context) ([]*domainunits.Unit, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var docs []unitDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domainunits.Unit, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toAggregate())
	}
	return out, nil
}

func (r *UnitRepository) Save(ctx context.Context, unit *domainunits.Unit) error {
	doc := newUnitDocument(unit)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type unitDocument struct {
	ID               string `bson:"_id"`
	Name             string `bson:"name"`
	Description      string `bson:"description"`
	Capacity         int    `bson:"capacity"`
	WeekdayRateMinor int64  `bson:"weekday_rate_minor"`
	WeekendRateMinor int64  `bson:"weekend_rate_minor"`
	Currency         string `bson:"currency"`
	PhotoURL         string `bson:"photo_url"`
}

func newUnitDocument(u *domainunits.Unit) unitDocument {
	return unitDocument{
		ID:               string(u.ID),
		Name:             u.Name,
		Description:      u.Description,
		Capacity:         u.Capacity,
		WeekdayRateMinor: u.WeekdayRate.Amount,
		WeekendRateMinor: u.WeekendRate.Amount,
		Currency:         u.WeekdayRate.Currency,
		PhotoURL:         u.PhotoURL,
	}
}

func (d unitDocument) toAggregate() *domainunits.Unit {
	return &domainunits.Unit{
		ID:          domainunits.UnitID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Capacity:    d.Capacity,
		WeekdayRate: money.Money{Amount: d.WeekdayRateMinor, Currency: d.Currency},
		WeekendRate: money.Money{Amount: d.WeekendRateMinor, Currency: d.Currency},
		PhotoURL:    d.PhotoURL,
	}
}

var _ domainunits.Repository = (*UnitRepository)(nil)
