package controller

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRoleListOrderedByName(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "roles" ORDER BY role_name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"role_code", "role_name", "role_description"}).
			AddRow("ADMIN", "Administrator", nil).
			AddRow("SERVICE_CENTER", "Service Center", "Branch staff"))

	app := fiber.New()
	app.Get("/api/roles", NewRoleController(db).List)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/roles", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	require.Len(t, out.Data, 2)
	assert.Equal(t, "ADMIN", out.Data[0]["role_code"])
	assert.NotContains(t, out.Data[0], "role_description")
	assert.NoError(t, mock.ExpectationsWereMet())
}
