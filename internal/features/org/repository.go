package org

import (
	"context"

	"go-hiring/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrgRepository interface {
	FindHolding(ctx context.Context, id string) (*Holding, error)
	FindGerencia(ctx context.Context, id string) (*Gerencia, error)
	FindArea(ctx context.Context, id string) (*Area, error)
	FindPuesto(ctx context.Context, id string) (*Puesto, error)
	ListGerencias(ctx context.Context, holdingID string) ([]Gerencia, error)
	ListAreas(ctx context.Context, gerenciaID string) ([]Area, error)
	ListPuestos(ctx context.Context, areaID string) ([]Puesto, error)

	CreateHolding(ctx context.Context, holding *Holding) error
	CreateGerencia(ctx context.Context, gerencia *Gerencia) error
	CreateArea(ctx context.Context, area *Area) error
	CreatePuesto(ctx context.Context, puesto *Puesto) error
}

type OrgRepositoryImpl struct {
	Holdings  *mongo.Collection
	Gerencias *mongo.Collection
	Areas     *mongo.Collection
	Puestos   *mongo.Collection
}

func NewOrgRepository(mongodb *database.MongodbDB) OrgRepository {
	return &OrgRepositoryImpl{
		Holdings:  mongodb.DB.Collection("holdings"),
		Gerencias: mongodb.DB.Collection("gerencias"),
		Areas:     mongodb.DB.Collection("areas"),
		Puestos:   mongodb.DB.Collection("puestos"),
	}
}

func (r *OrgRepositoryImpl) FindHolding(ctx context.Context, id string) (*Holding, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var holding Holding
	err = r.Holdings.FindOne(ctx, bson.M{"_id": oid}).Decode(&holding)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &holding, nil
}

func (r *OrgRepositoryImpl) FindGerencia(ctx context.Context, id string) (*Gerencia, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var gerencia Gerencia
	err = r.Gerencias.FindOne(ctx, bson.M{"_id": oid}).Decode(&gerencia)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &gerencia, nil
}

func (r *OrgRepositoryImpl) FindArea(ctx context.Context, id string) (*Area, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var area Area
	err = r.Areas.FindOne(ctx, bson.M{"_id": oid}).Decode(&area)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

func (r *OrgRepositoryImpl) FindPuesto(ctx context.Context, id string) (*Puesto, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var puesto Puesto
	err = r.Puestos.FindOne(ctx, bson.M{"_id": oid}).Decode(&puesto)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &puesto, nil
}

func (r *OrgRepositoryImpl) ListGerencias(ctx context.Context, holdingID string) ([]Gerencia, error) {
	cursor, err := r.Gerencias.Find(ctx, bson.M{"holding_id": holdingID})
	if err != nil {
		return nil, err
	}
	var gerencias []Gerencia
	if err = cursor.All(ctx, &gerencias); err != nil {
		return nil, err
	}
	return gerencias, nil
}

func (r *OrgRepositoryImpl) ListAreas(ctx context.Context, gerenciaID string) ([]Area, error) {
	cursor, err := r.Areas.Find(ctx, bson.M{"gerencia_id": gerenciaID})
	if err != nil {
		return nil, err
	}
	var areas []Area
	if err = cursor.All(ctx, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *OrgRepositoryImpl) ListPuestos(ctx context.Context, areaID string) ([]Puesto, error) {
	cursor, err := r.Puestos.Find(ctx, bson.M{"area_id": areaID})
	if err != nil {
		return nil, err
	}
	var puestos []Puesto
	if err = cursor.All(ctx, &puestos); err != nil {
		return nil, err
	}
	return puestos, nil
}

func (r *OrgRepositoryImpl) CreateHolding(ctx context.Context, holding *Holding) error {
	if holding.ID.IsZero() {
		holding.ID = primitive.NewObjectID()
	}
	_, err := r.Holdings.InsertOne(ctx, holding)
	return err
}

func (r *OrgRepositoryImpl) CreateGerencia(ctx context.Context, gerencia *Gerencia) error {
	if gerencia.ID.IsZero() {
		gerencia.ID = primitive.NewObjectID()
	}
	_, err := r.Gerencias.InsertOne(ctx, gerencia)
	return err
}

func (r *OrgRepositoryImpl) CreateArea(ctx context.Context, area *Area) error {
	if area.ID.IsZero() {
		area.ID = primitive.NewObjectID()
	}
	_, err := r.Areas.InsertOne(ctx, area)
	return err
}

func (r *OrgRepositoryImpl) CreatePuesto(ctx context.Context, puesto *Puesto) error {
	if puesto.ID.IsZero() {
		puesto.ID = primitive.NewObjectID()
	}
	_, err := r.Puestos.InsertOne(ctx, puesto)
	return err
}
