package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GeneratePropertyTag generates a QR code image linking to a property's
	// dashboard page
	GeneratePropertyTag(propertyID string) ([]byte, error)

	// ParsePropertyTag parses scanned QR data and returns the property ID
	ParsePropertyTag(qrData string) (string, error)
}
