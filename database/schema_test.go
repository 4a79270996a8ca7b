package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"carrental/config"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestSchemaColumnKinds(t *testing.T) {
	cars := collectionSchemas[CollectionCars]
	assert.Equal(t, kindBool, cars["available"])
	assert.Equal(t, kindJSON, cars["features"])
	assert.Equal(t, kindInt, cars["price_per_day"])
	assert.Equal(t, kindFloat, cars["mpg"])
	assert.Equal(t, kindText, cars["plate_number"])
	assert.Equal(t, kindTime, cars["created_at"])

	bookings := collectionSchemas[CollectionBookings]
	assert.Equal(t, kindDate, bookings["pickup_date"])
	assert.Equal(t, kindJSON, bookings["insurance"])
	assert.True(t, bookings.has("car_plate"))
	assert.False(t, bookings.has("car"))
}

func TestSchemaEncode(t *testing.T) {
	s := collectionSchemas[CollectionBookings]
	row, err := s.encode(Record{
		"extras":      []map[string]interface{}{{"id": "1", "price": 15}},
		"pickup_date": "",
		"return_date": "2024-07-04",
		"car":         map[string]interface{}{"name": "joined"},
	})
	require.NoError(t, err)

	assert.Equal(t, datatypes.JSON(`[{"id":"1","price":15}]`), row["extras"])
	assert.Nil(t, row["pickup_date"])
	assert.Equal(t, "2024-07-04", row["return_date"])
	assert.NotContains(t, row, "car")

	_, err = collectionSchemas[CollectionLocations].encode(Record{"updated_at": "yesterday"})
	assert.Error(t, err)
}

func TestSchemaDecode(t *testing.T) {
	created := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	rec := collectionSchemas[CollectionCars].decode(map[string]interface{}{
		"available":  int64(1),
		"is_popular": []byte("0"),
		"features":   []byte(`["ABS","GPS"]`),
		"images":     nil,
		"name":       []byte("Clio"),
		"created_at": created,
	})
	assert.Equal(t, true, rec["available"])
	assert.Equal(t, false, rec["is_popular"])
	assert.Equal(t, []interface{}{"ABS", "GPS"}, rec["features"])
	assert.Nil(t, rec["images"])
	assert.Equal(t, "Clio", rec["name"])
	assert.Equal(t, "2024-07-01T09:30:00.000000000Z", rec["created_at"])

	booking := collectionSchemas[CollectionBookings].decode(map[string]interface{}{
		"pickup_date": time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local),
		"return_date": "2024-07-04T00:00:00Z",
	})
	assert.Equal(t, "2024-07-01", booking["pickup_date"])
	assert.Equal(t, "2024-07-04", booking["return_date"])
}

func TestFilterClause(t *testing.T) {
	s := collectionSchemas[CollectionCars]

	clause, args, err := filterClause(s, ILike("name", "50%_off"))
	require.NoError(t, err)
	assert.Equal(t, "LOWER(name) LIKE ?", clause)
	assert.Equal(t, []interface{}{`%50\%\_off%`}, args)

	clause, args, err = filterClause(s, In("id", []string{"a", "b"}))
	require.NoError(t, err)
	assert.Equal(t, "id IN ?", clause)
	assert.Equal(t, []interface{}{[]interface{}{"a", "b"}}, args)

	clause, _, err = filterClause(s, In("id", []string{}))
	require.NoError(t, err)
	assert.Equal(t, "1 = 0", clause)

	clause, _, err = filterClause(s, Eq("location", nil))
	require.NoError(t, err)
	assert.Equal(t, "location IS NULL", clause)

	_, _, err = filterClause(s, Eq("name; DROP TABLE cars", "x"))
	assert.Error(t, err)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", &gomysql.MySQLError{Number: 1062})))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicateKey(&gomysql.MySQLError{Number: 1045}))
	assert.False(t, IsDuplicateKey(errors.New("boom")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("cars x: %w", ErrRecordNotFound)))
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestDSN(t *testing.T) {
	cfg := config.Default().Database

	dsn := MySQLDSN(cfg)
	assert.Contains(t, dsn, "rental_user:rental1234@tcp(127.0.0.1:3306)/rental_db")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	cfg.Port = 5432
	assert.Equal(t,
		"host=127.0.0.1 port=5432 user=rental_user password=rental1234 dbname=rental_db sslmode=disable",
		PostgresDSN(cfg))
}
