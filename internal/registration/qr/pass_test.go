package qr_test

import (
	"bytes"
	"testing"

	"event-manager/internal/models"
	"event-manager/internal/registration/qr"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}

func TestGeneratePass(t *testing.T) {
	gen := qr.NewPassGenerator("test-secret-key")

	reg := models.Registration{
		ID:               5,
		AttendeeID:       1,
		ScheduleID:       2,
		RegistrationDate: "2025-08-01",
	}

	png, err := gen.GeneratePass(reg)
	if err != nil {
		t.Fatalf("Failed to generate pass: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("Expected a non-empty image")
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("Expected output to be a PNG image")
	}
}

func TestGeneratePassAnySecretLength(t *testing.T) {
	// The secret is hashed to a fixed AES key size, so any length works.
	for _, secret := range []string{"", "short", "a-much-longer-secret-that-exceeds-thirty-two-bytes"} {
		gen := qr.NewPassGenerator(secret)
		png, err := gen.GeneratePass(models.Registration{ID: 1, AttendeeID: 1, ScheduleID: 1})
		if err != nil {
			t.Errorf("Secret %q: unexpected error %v", secret, err)
		}
		if len(png) == 0 {
			t.Errorf("Secret %q: expected image bytes", secret)
		}
	}
}

func TestGeneratePassUniqueIVs(t *testing.T) {
	gen := qr.NewPassGenerator("test-secret-key")
	reg := models.Registration{ID: 5, AttendeeID: 1, ScheduleID: 2}

	first, err := gen.GeneratePass(reg)
	if err != nil {
		t.Fatalf("Failed to generate pass: %v", err)
	}
	second, err := gen.GeneratePass(reg)
	if err != nil {
		t.Fatalf("Failed to generate pass: %v", err)
	}

	// A fresh IV per pass means identical payloads never produce the
	// same ciphertext or image.
	if bytes.Equal(first, second) {
		t.Error("Expected two passes for the same registration to differ")
	}
}
