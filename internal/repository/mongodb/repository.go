package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/granjasoft/avicore/internal/domain/models"
)

// ErrLotNotFound is returned when no lot exists for the requested id.
var ErrLotNotFound = errors.New("lot not found")

// Repository defines the lot and daily-record storage operations the engine's
// collaborators need. Record ordering is not guaranteed by the store; the
// engine sorts.
type Repository interface {
	FetchLot(ctx context.Context, lotID string) (*models.Lot, error)
	ListActiveLots(ctx context.Context) ([]models.Lot, error)
	FetchRecords(ctx context.Context, lotID string, from, to *time.Time) ([]models.DailyRecord, error)
	InsertDailyRecord(ctx context.Context, record models.DailyRecord) (string, error)
}

// lotDoc and recordDoc pair the Mongo ObjectID with the domain struct, which
// keeps hex string ids on the models and the driver type here.
type lotDoc struct {
	OID        primitive.ObjectID `bson:"_id,omitempty"`
	models.Lot `bson:",inline"`
}

type recordDoc struct {
	OID                primitive.ObjectID `bson:"_id,omitempty"`
	models.DailyRecord `bson:",inline"`
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client      *mongo.Client
	dbName      string
	lotsColl    string
	recordsColl string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:      client,
		dbName:      dbName,
		lotsColl:    "lots",
		recordsColl: "daily_records",
	}, nil
}

// FetchLot loads one lot's cohort metadata by its hex id.
func (r *MongoDBRepository) FetchLot(ctx context.Context, lotID string) (*models.Lot, error) {
	oid, err := primitive.ObjectIDFromHex(lotID)
	if err != nil {
		return nil, ErrLotNotFound
	}

	collection := r.client.Database(r.dbName).Collection(r.lotsColl)

	var doc lotDoc
	if err := collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLotNotFound
		}
		return nil, fmt.Errorf("failed to fetch lot %s: %w", lotID, err)
	}

	lot := doc.Lot
	lot.ID = doc.OID.Hex()
	return &lot, nil
}

// ListActiveLots returns every lot still being tracked.
func (r *MongoDBRepository) ListActiveLots(ctx context.Context) ([]models.Lot, error) {
	collection := r.client.Database(r.dbName).Collection(r.lotsColl)

	cursor, err := collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list active lots: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []lotDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode lots: %w", err)
	}

	lots := make([]models.Lot, 0, len(docs))
	for _, doc := range docs {
		lot := doc.Lot
		lot.ID = doc.OID.Hex()
		lots = append(lots, lot)
	}

	return lots, nil
}

// FetchRecords loads a lot's daily records, optionally bounded by date.
func (r *MongoDBRepository) FetchRecords(ctx context.Context, lotID string, from, to *time.Time) ([]models.DailyRecord, error) {
	filter := bson.M{"lot_id": lotID}

	dateFilter := bson.M{}
	if from != nil {
		dateFilter["$gte"] = *from
	}
	if to != nil {
		dateFilter["$lte"] = *to
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	collection := r.client.Database(r.dbName).Collection(r.recordsColl)

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records for lot %s: %w", lotID, err)
	}
	defer cursor.Close(ctx)

	var docs []recordDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	records := make([]models.DailyRecord, 0, len(docs))
	for _, doc := range docs {
		record := doc.DailyRecord
		record.ID = doc.OID.Hex()
		records = append(records, record)
	}

	return records, nil
}

// InsertDailyRecord stores one field observation and returns its id.
func (r *MongoDBRepository) InsertDailyRecord(ctx context.Context, record models.DailyRecord) (string, error) {
	record.CreatedAt = time.Now()

	collection := r.client.Database(r.dbName).Collection(r.recordsColl)

	res, err := collection.InsertOne(ctx, recordDoc{DailyRecord: record})
	if err != nil {
		return "", fmt.Errorf("failed to insert daily record: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	return oid.Hex(), nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
