package postgres

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
)

var testPolygon = domain.Polygon{
	{Lat: 0, Lon: 0}, {Lat: 0, Lon: 10}, {Lat: 10, Lon: 10}, {Lat: 10, Lon: 0},
}

const testPolygonJSON = `[[0,0],[0,10],[10,10],[10,0]]`

func TestGeoZoneInsert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	mock.ExpectExec(`INSERT INTO geozones`).
		WithArgs("zone-1", "client-1", "home", []byte(testPolygonJSON), true, ts, ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewGeoZoneRepo(db)
	err = repo.Insert(context.Background(), &domain.GeoZone{
		ID:        "zone-1",
		ClientID:  "client-1",
		Name:      "home",
		Polygon:   testPolygon,
		IsActive:  true,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGeoZoneListActiveByClient_PolygonRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows([]string{"id", "client_id", "name", "polygon", "is_active", "created_at", "updated_at"}).
		AddRow("zone-1", "client-1", "home", []byte(testPolygonJSON), true, ts, ts)

	mock.ExpectQuery(`SELECT (.+) FROM geozones WHERE client_id = (.+) AND is_active = TRUE`).
		WithArgs("client-1").
		WillReturnRows(rows)

	repo := NewGeoZoneRepo(db)
	zones, err := repo.ListActiveByClient(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(zones))
	}
	if !reflect.DeepEqual(zones[0].Polygon, testPolygon) {
		t.Errorf("polygon did not round-trip: %v", zones[0].Polygon)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGeoZoneUpdate_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`UPDATE geozones SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGeoZoneRepo(db)
	err = repo.Update(context.Background(), &domain.GeoZone{ID: "missing", Polygon: testPolygon})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGeoZoneDelete_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`DELETE FROM geozones`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGeoZoneRepo(db)
	err = repo.Delete(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGeoZoneDelete_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`DELETE FROM geozones`).
		WithArgs("zone-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewGeoZoneRepo(db)
	if err := repo.Delete(context.Background(), "zone-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
