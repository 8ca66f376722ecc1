package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpricing "domoreserva/internal/domain/pricing"
	domainreservation "domoreserva/internal/domain/reservation"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/shared/money"
	domainunits "domoreserva/internal/domain/units"
)

const reservationCollection = "reservations"

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(reservationCollection)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *ReservationRepository) List(ctx context.Context) ([]*domainreservation.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *ReservationRepository) ConfirmedByUnit(ctx context.Context, unitID domainunits.UnitID) ([]*domainreservation.Reservation, error) {
	filter := bson.M{
		"unit_id": string(unitID),
		"state":   string(domainreservation.StateConfirmed),
	}
	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	return r.find(ctx, filter, opts)
}

// ConfirmedOverlapping uses the half-open range predicate: an existing
// stay conflicts when it starts before the candidate ends and ends
// after the candidate starts. Shared boundary dates never match.
func (r *ReservationRepository) ConfirmedOverlapping(ctx context.Context, unitID domainunits.UnitID, stay domainreservation.Stay) ([]*domainreservation.Reservation, error) {
	filter := bson.M{
		"unit_id":   string(unitID),
		"state":     string(domainreservation.StateConfirmed),
		"check_in":  bson.M{"$lt": stay.CheckOut.String()},
		"check_out": bson.M{"$gt": stay.CheckIn.String()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domainreservation.Reservation, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var docs []reservationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domainreservation.Reservation, 0, len(docs))
	for _, doc := range docs {
		agg, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}

// Dates are stored as ISO strings so lexicographic comparison in the
// overlap filter matches chronological order.
type reservationDocument struct {
	ID            string `bson:"_id"`
	UnitID        string `bson:"unit_id"`
	GuestName     string `bson:"guest_name"`
	GuestPhone    string `bson:"guest_phone"`
	GuestEmail    string `bson:"guest_email"`
	CheckIn       string `bson:"check_in"`
	CheckOut      string `bson:"check_out"`
	Nights        int    `bson:"nights"`
	BaseMinor     int64  `bson:"base_minor"`
	DiscountMinor int64  `bson:"discount_minor"`
	TotalMinor    int64  `bson:"total_minor"`
	Currency      string `bson:"currency"`
	State         string `bson:"state"`
	CreatedAt     int64  `bson:"created_at"`
	UpdatedAt     int64  `bson:"updated_at"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:            string(res.ID),
		UnitID:        string(res.UnitID),
		GuestName:     res.Guest.Name,
		GuestPhone:    res.Guest.Phone,
		GuestEmail:    res.Guest.Email,
		CheckIn:       res.Stay.CheckIn.String(),
		CheckOut:      res.Stay.CheckOut.String(),
		Nights:        res.Quote.Nights,
		BaseMinor:     res.Quote.Base.Amount,
		DiscountMinor: res.Quote.Discount.Amount,
		TotalMinor:    res.Quote.Total.Amount,
		Currency:      res.Quote.Total.Currency,
		State:         string(res.State),
		CreatedAt:     res.CreatedAt.UnixMilli(),
		UpdatedAt:     res.UpdatedAt.UnixMilli(),
	}
}

func (d reservationDocument) toAggregate() (*domainreservation.Reservation, error) {
	checkIn, err := civil.Parse(d.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("mongo: reservation %s check_in: %w", d.ID, err)
	}
	checkOut, err := civil.Parse(d.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("mongo: reservation %s check_out: %w", d.ID, err)
	}
	return &domainreservation.Reservation{
		ID:     domainreservation.ReservationID(d.ID),
		UnitID: domainunits.UnitID(d.UnitID),
		Guest: domainreservation.Guest{
			Name:  d.GuestName,
			Phone: d.GuestPhone,
			Email: d.GuestEmail,
		},
		Stay: domainreservation.Stay{CheckIn: checkIn, CheckOut: checkOut},
		Quote: domainpricing.Quote{
			Nights:   d.Nights,
			Base:     money.Money{Amount: d.BaseMinor, Currency: d.Currency},
			Discount: money.Money{Amount: d.DiscountMinor, Currency: d.Currency},
			Total:    money.Money{Amount: d.TotalMinor, Currency: d.Currency},
		},
		State:     domainreservation.State(d.State),
		CreatedAt: time.UnixMilli(d.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(d.UpdatedAt).UTC(),
	}, nil
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
