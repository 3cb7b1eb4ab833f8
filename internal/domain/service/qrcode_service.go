package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// StorefrontURL returns the public URL of the storefront addressed by slug.
	StorefrontURL(slug string) string

	// GenerateStorefrontQR generates a PNG QR code pointing at the storefront.
	GenerateStorefrontQR(slug string) ([]byte, error)
}
