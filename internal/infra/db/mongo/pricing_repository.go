package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpricing "domoreserva/internal/domain/pricing"
	"domoreserva/internal/domain/shared/civil"
)

const (
	holidayCollection = "holidays"
	configCollection  = "pricing_config"
	discountConfigID  = "discount_policy"
)

type HolidayRepository struct {
	col *mongo.Collection
}

func NewHolidayRepository(db *mongo.Database) *HolidayRepository {
	return &HolidayRepository{col: db.Collection(holidayCollection)}
}

func (r *HolidayRepository) List(ctx context.Context) ([]domainpricing.Holiday, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var docs []holidayDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domainpricing.Holiday, 0, len(docs))
	for _, doc := range docs {
		h, err := doc.toHoliday()
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *HolidayRepository) Add(ctx context.Context, holiday domainpricing.Holiday) error {
	doc := holidayDocument{
		ID:   holiday.ID,
		Date: holiday.Date.String(),
		Name: holiday.Name,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainpricing.ErrHolidayExists
		}
		return err
	}
	return nil
}

func (r *HolidayRepository) Remove(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainpricing.ErrHolidayNotFound
	}
	return nil
}

type holidayDocument struct {
	ID   string `bson:"_id"`
	Date string `bson:"date"`
	Name string `bson:"name"`
}

func (d holidayDocument) toHoliday() (domainpricing.Holiday, error) {
	date, err := civil.Parse(d.Date)
	if err != nil {
		return domainpricing.Holiday{}, fmt.Errorf("mongo: holiday %s date: %w", d.ID, err)
	}
	return domainpricing.Holiday{ID: d.ID, Date: date, Name: d.Name}, nil
}

// DiscountRepository stores the discount table as a single config
// document. An absent document means the stock table.
type DiscountRepository struct {
	col *mongo.Collection
}

func NewDiscountRepository(db *mongo.Database) *DiscountRepository {
	return &DiscountRepository{col: db.Collection(configCollection)}
}

func (r *DiscountRepository) Policy(ctx context.Context) (domainpricing.DiscountPolicy, error) {
	var doc discountDocument
	err := r.col.FindOne(ctx, bson.M{"_id": discountConfigID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainpricing.DefaultDiscountPolicy(), nil
		}
		return domainpricing.DiscountPolicy{}, err
	}
	tiers := make([]domainpricing.DiscountTier, 0, len(doc.Tiers))
	for _, t := range doc.Tiers {
		tiers = append(tiers, domainpricing.DiscountTier{MinNights: t.MinNights, Percent: t.Percent})
	}
	return domainpricing.NewDiscountPolicy(tiers...)
}

func (r *DiscountRepository) SetPolicy(ctx context.Context, policy domainpricing.DiscountPolicy) error {
	tiers := policy.Tiers()
	doc := discountDocument{ID: discountConfigID, Tiers: make([]discountTierDocument, 0, len(tiers))}
	for _, t := range tiers {
		doc.Tiers = append(doc.Tiers, discountTierDocument{MinNights: t.MinNights, Percent: t.Percent})
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type discountDocument struct {
	ID    string                 `bson:"_id"`
	Tiers []discountTierDocument `bson:"tiers"`
}

type discountTierDocument struct {
	MinNights int `bson:"min_nights"`
	Percent   int `bson:"percent"`
}

var (
	_ domainpricing.HolidayRepository  = (*HolidayRepository)(nil)
	_ domainpricing.DiscountRepository = (*DiscountRepository)(nil)
)
