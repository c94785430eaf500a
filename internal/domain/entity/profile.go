package entity

// RetailerProfile documentos de identidad comercial de un minorista.
// Las imágenes son URLs públicas del object storage.
type RetailerProfile struct {
	ID               string
	UserID           string
	ShopName         string
	ShopAddress      string
	GSTNumber        string
	LicenseNumber    string
	AadharCardNumber string
	PanCardNumber    string
	ReferralCode     string
	ShopImage        string
	AadharImage      string
	PanImage         string
	LicenseImage     string
}

// WholesalerProfile documentos de identidad comercial de un mayorista.
type WholesalerProfile struct {
	ID               string
	UserID           string
	CompanyName      string
	CompanyAddress   string
	GSTNumber        string
	LicenseNumber    string
	AadharCardNumber string
	PanCardNumber    string
	CompanyImage     string
	AadharImage      string
	PanImage         string
	LicenseImage     string
}
