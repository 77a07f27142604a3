package store

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

const recommendationDatabase = "recommendation"

func GetNeo4JClient(host, port, user, pass string) (*neo4j.DriverWithContext, error) {
	uri := fmt.Sprintf("bolt://%s:%s/", host, port)
	auth := neo4j.BasicAuth(user, pass, "")

	driver, err := neo4j.NewDriverWithContext(uri, auth)
	return &driver, err
}

type RecommendationNeo4JStore struct {
	driver neo4j.DriverWithContext
	logger *log.Logger
	tracer trace.Tracer
}

func NewRecommendationNeo4JStore(driver *neo4j.DriverWithContext, tracer trace.Tracer) domain.RecommendationStore {
	return &RecommendationNeo4JStore{
		driver: *driver,
		logger: log.Default(),
		tracer: tracer,
	}
}

// RecordBooking links a student to a property in the graph; booking counts
// drive the popularity score.
func (store *RecommendationNeo4JStore) RecordBooking(ctx context.Context, userID, propertyID string) error {
	ctx, span := store.tracer.Start(ctx, "RecommendationStore.RecordBooking")
	defer span.End()

	session := store.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: recommendationDatabase})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx,
		func(transaction neo4j.ManagedTransaction) (any, error) {
			_, err := transaction.Run(ctx,
				"MERGE (s:Student {id: $userId}) "+
					"MERGE (p:Property {id: $propertyId}) "+
					"MERGE (s)-[b:BOOKED]->(p) "+
					"ON CREATE SET b.count = 1 "+
					"ON MATCH SET b.count = b.count + 1",
				map[string]any{"userId": userID, "propertyId": propertyID})
			if err != nil {
				log.Printf("RecommendationStore.RecordBooking.Run() : %s", err)
				return nil, err
			}
			return nil, nil
		})
	if err != nil {
		log.Printf("RecommendationStore.RecordBooking.ExecuteWrite() : %s", err)
		return err
	}

	return nil
}

// TopProperties returns the most-booked properties, scores descending from
// the booking count.
func (store *RecommendationNeo4JStore) TopProperties(ctx context.Context, limit int) ([]*domain.ScoredProperty, error) {
	ctx, span := store.tracer.Start(ctx, "RecommendationStore.TopProperties")
	defer span.End()

	session := store.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: recommendationDatabase})
	defer session.Close(ctx)

	results, err := session.ExecuteRead(ctx,
		func(transaction neo4j.ManagedTransaction) (any, error) {
			result, err := transaction.Run(ctx,
				"MATCH (:Student)-[b:BOOKED]->(p:Property) "+
					"RETURN p.id AS id, p.name AS name, p.city AS city, sum(b.count) AS score "+
					"ORDER BY score DESC LIMIT $limit",
				map[string]any{"limit": limit})
			if err != nil {
				log.Printf("RecommendationStore.TopProperties.Run() : %s", err)
				return nil, err
			}

			var scored []*domain.ScoredProperty
			for result.Next(ctx) {
				record := result.Record()
				entry := &domain.ScoredProperty{}
				if id, ok := record.Get("id"); ok {
					entry.PropertyID, _ = id.(string)
				}
				if name, ok := record.Get("name"); ok {
					entry.Name, _ = name.(string)
				}
				if city, ok := record.Get("city"); ok {
					entry.City, _ = city.(string)
				}
				if score, ok := record.Get("score"); ok {
					switch value := score.(type) {
					case int64:
						entry.Score = float64(value)
					case float64:
						entry.Score = value
					}
				}
				scored = append(scored, entry)
			}
			return scored, result.Err()
		})
	if err != nil {
		log.Printf("RecommendationStore.TopProperties.ExecuteRead() : %s", err)
		return nil, err
	}

	scored, _ := results.([]*domain.ScoredProperty)
	return scored, nil
}
