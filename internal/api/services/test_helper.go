package services

import (
	"log"
	"os"
	"testing"

	"stockroom/internal/repository"
	"stockroom/internal/testutil"
)

var testDB *repository.Database

func TestMain(m *testing.M) {
	log.Println("[TestMain services] Starting test setup")

	db, err := testutil.SetupTestDB("../../../.env.test", "../../../migrations")
	if err != nil {
		log.Printf("[TestMain services] Failed to set up test database: %v", err)
		testDB = nil
		code := m.Run()
		os.Exit(code)
	}
	testDB = db
	log.Println("[TestMain services] Test database ready")

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}
