package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drjidental/clinic_backend/models"
)

// CatalogRepository reads the dentist profile and service catalog. These
// records are maintained from the back office; the public API only reads.
type CatalogRepository struct {
	dentists *mongo.Collection
	services *mongo.Collection
}

func NewCatalogRepository(db *mongo.Client, dbName string) *CatalogRepository {
	database := db.Database(dbName)
	return &CatalogRepository{
		dentists: database.Collection("dentists"),
		services: database.Collection("services"),
	}
}

func (r *CatalogRepository) Dentists(ctx context.Context) ([]models.Dentist, error) {
	cursor, err := r.dentists.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	dentists := []models.Dentist{}
	if err := cursor.All(ctx, &dentists); err != nil {
		return nil, err
	}
	for i := range dentists {
		dentists[i].SplitCertifications()
	}
	return dentists, nil
}

// ActiveServices lists the catalog in display order.
func (r *CatalogRepository) ActiveServices(ctx context.Context) ([]models.Service, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.services.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	for i := range services {
		services[i].SplitBenefits()
	}
	return services, nil
}

func (r *CatalogRepository) ServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var service models.Service
	err := r.services.FindOne(ctx, bson.M{"slug": slug, "isActive": true}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	service.SplitBenefits()
	return &service, nil
}
