package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"

	"event-manager/internal/models"

	"github.com/skip2/go-qrcode"
)

// PassGenerator renders a registration as an encrypted QR code that a
// door scanner can verify offline.
type PassGenerator struct {
	secret []byte
}

func NewPassGenerator(secret string) *PassGenerator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &PassGenerator{secret: hashed[:]}
}

// GeneratePass encrypts the registration payload and encodes it as a
// 256x256 QR PNG.
func (g *PassGenerator) GeneratePass(reg models.Registration) ([]byte, error) {
	data, err := json.Marshal(reg)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
