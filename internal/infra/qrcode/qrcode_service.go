package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"vendorwatch/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// TagData represents the QR code payload printed on property tag labels
type TagData struct {
	PropertyID string `json:"property_id"`
	URL        string `json:"url,omitempty"`
	Type       string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GeneratePropertyTag generates a QR code image linking to a property's dashboard page
func (s *qrcodeService) GeneratePropertyTag(propertyID string) ([]byte, error) {
	data := TagData{
		PropertyID: propertyID,
		Type:       "property_tag",
	}
	if s.baseURL != "" {
		data.URL = fmt.Sprintf("%s/%s", s.baseURL, propertyID)
	}

	// Convert to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	// Generate QR code
	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParsePropertyTag parses scanned QR data and returns the property ID
func (s *qrcodeService) ParsePropertyTag(qrData string) (string, error) {
	var data TagData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != "property_tag" {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if data.PropertyID == "" {
		return "", fmt.Errorf("QR code payload has no property ID")
	}

	return data.PropertyID, nil
}
