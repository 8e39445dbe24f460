package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
	"github.com/parcelhub/dpd-gateway/internal/core/ports"
)

const collectionShipments = "shipments"

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// Create inserts a new shipment document, keyed by its reference. A
// duplicate reference maps to domain.ErrShipmentExists.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.ID == "" {
		s.ID = s.Reference
	}
	_, err := r.col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrShipmentExists
	}
	return err
}

// FindByReference retrieves a shipment by its local reference.
func (r *ShipmentRepository) FindByReference(ctx context.Context, ref string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shipment
	err := r.col.FindOne(ctx, bson.M{"reference": ref}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// SetParcels replaces the package count and parcel list.
func (r *ShipmentRepository) SetParcels(ctx context.Context, ref string, count int, parcels []domain.Parcel) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"reference": ref}, bson.M{
		"$set": bson.M{
			"package_count": count,
			"parcels":       parcels,
			"updated_at":    time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// SaveLabel stores the submission result in one write.
func (r *ShipmentRepository) SaveLabel(ctx context.Context, ref, trackingRef, labelName string, labelPDF []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"reference": ref}, bson.M{
		"$set": bson.M{
			"tracking_ref": trackingRef,
			"label_name":   labelName,
			"label_pdf":    labelPDF,
			"updated_at":   time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// ApplyTrackingUpdate persists a merged tracking poll: the full event list,
// the coarse state, and (on a transition) one appended status note.
func (r *ShipmentRepository) ApplyTrackingUpdate(ctx context.Context, ref string, update ports.TrackingUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"events":     update.Events,
		"updated_at": time.Now().UTC(),
	}
	if update.State != "" {
		set["delivery_state"] = update.State
	}

	u := bson.M{"$set": set}
	if update.Note != nil {
		u["$push"] = bson.M{"status_notes": update.Note}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"reference": ref}, u)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// ListPendingTracking returns the references of shipments that have been
// submitted to the carrier but are not delivered yet.
func (r *ShipmentRepository) ListPendingTracking(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"tracking_ref":   bson.M{"$nin": bson.A{"", nil}},
		"delivery_state": bson.M{"$ne": domain.StateDelivered},
	}
	opts := options.Find().SetProjection(bson.M{"reference": 1})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var refs []string
	for cur.Next(ctx) {
		var doc struct {
			Reference string `bson:"reference"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		refs = append(refs, doc.Reference)
	}
	return refs, cur.Err()
}

// EnsureIndexes creates necessary indexes on the shipments collection.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.col, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tracking_ref", Value: 1}}},
		{Keys: bson.D{{Key: "delivery_state", Value: 1}}},
	})
}
