package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parcelhub/dpd-gateway/internal/core/domain"
)

const collectionCarrier = "carrier_config"

// The gateway fronts exactly one DPD account, so the configuration lives in
// a single well-known document.
const carrierConfigID = "dpd"

type CarrierConfigRepository struct {
	col *mongo.Collection
}

func NewCarrierConfigRepository(db *mongo.Database) *CarrierConfigRepository {
	return &CarrierConfigRepository{col: db.Collection(collectionCarrier)}
}

// Get returns the carrier configuration record.
func (r *CarrierConfigRepository) Get(ctx context.Context) (*domain.CarrierConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cfg domain.CarrierConfig
	err := r.col.FindOne(ctx, bson.M{"_id": carrierConfigID}).Decode(&cfg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarrierNotConfigured
		}
		return nil, err
	}
	return &cfg, nil
}

// Save upserts the configuration record under the fixed id.
func (r *CarrierConfigRepository) Save(ctx context.Context, cfg *domain.CarrierConfig) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cfg.ID = carrierConfigID
	cfg.UpdatedAt = time.Now().UTC()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": carrierConfigID}, cfg, options.Replace().SetUpsert(true))
	return err
}

// SaveSession writes token, customer UID, depot and login timestamp as one
// atomic set: the login operation is the only writer.
func (r *CarrierConfigRepository) SaveSession(ctx context.Context, id string, session domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if id == "" {
		id = carrierConfigID
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"session":    session,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCarrierNotConfigured
	}
	return nil
}
