package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== TRANSACTION ID ====================

// GenerateTransactionID builds a synthetic gateway reference.
// Format: TXN_<unique>_<SUFFIX>, e.g. TXN_9f1c2ab34d_CARD
func GenerateTransactionID(suffix string) string {
	unique := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("TXN_%s_%s", unique, strings.ToUpper(suffix))
}

// ==================== ORDER NUMBER ====================

// GenerateOrderNumber creates a human-facing order reference with timestamp.
// Format: PED-YYYYMMDD-HHMMSS-RANDOM
func GenerateOrderNumber() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("PED-%s-%s-%s", datePart, timePart, randomPart)
}
