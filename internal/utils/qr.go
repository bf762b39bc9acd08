package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/skip2/go-qrcode"
)

// TicketPayload is the content encrypted into a ticket QR code.
type TicketPayload struct {
	TicketID   string `json:"ticket_id"`
	SessionID  string `json:"session_id"`
	UserID     string `json:"user_id"`
	SeatNumber int    `json:"seat_number"`
	HalfPrice  bool   `json:"half_price"`
	StartsAt   string `json:"starts_at"`
}

// QRGenerator renders encrypted ticket payloads as PNG QR codes.
type QRGenerator struct {
	key []byte
}

// NewQRGenerator derives a 32-byte AES key from secret.
func NewQRGenerator(secret string) *QRGenerator {
	hashed := sha256.Sum256([]byte(secret))
	return &QRGenerator{key: hashed[:]}
}

// PNG encrypts p and returns a 256x256 PNG QR code of the ciphertext.
func (g *QRGenerator) PNG(p TicketPayload) ([]byte, error) {
	token, err := g.Encrypt(p)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(token, qrcode.Medium, 256)
}

// Encrypt seals p with AES-GCM and returns it base64url encoded, nonce
// first.
func (g *QRGenerator) Encrypt(p TicketPayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	gcm, err := g.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, data, nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.  Used when a ticket is scanned at the door.
func (g *QRGenerator) Decrypt(token string) (TicketPayload, error) {
	var p TicketPayload
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return p, err
	}
	gcm, err := g.aead()
	if err != nil {
		return p, err
	}
	if len(raw) < gcm.NonceSize() {
		return p, errors.New("qr token too short")
	}
	data, err := gcm.Open(nil, raw[:gcm.NonceSize()], raw[gcm.NonceSize():], nil)
	if err != nil {
		return p, err
	}
	err = json.Unmarshal(data, &p)
	return p, err
}

func (g *QRGenerator) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(g.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
