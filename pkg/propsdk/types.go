package propsdk

// User is the account profile as the backend returns it.
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	ContactNumber string `json:"contact_number"`
	City          string `json:"city"`
	State         string `json:"state"`
	ProfileImage  string `json:"profile_image"`
	TwoFAEnabled  bool   `json:"is_2fa_enabled"`
}

// Property is a listing as the backend returns it.
type Property struct {
	ID            int64    `json:"id"`
	SellerID      int64    `json:"seller_id"`
	Title         string   `json:"title"`
	PropertyType  string   `json:"property_type"`
	Price         float64  `json:"price"`
	BuiltUpArea   float64  `json:"built_up_area"`
	CarpetArea    float64  `json:"carpet_area"`
	FloorNo       int      `json:"floor_no"`
	TotalFloors   int      `json:"total_floors"`
	Furnishing    string   `json:"furnishing"`
	AvailableFrom string   `json:"available_from"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Pincode       string   `json:"pincode"`
	ContactPhone  string   `json:"contact_phone"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Video         string   `json:"video"`
	FloorPlan     string   `json:"floor_plan"`
	CreatedAt     string   `json:"created_at"`
	Saved         bool     `json:"is_saved"`
}

// PostOffice is one entry from the postal lookup proxy.
type PostOffice struct {
	Name     string `json:"Name"`
	District string `json:"District"`
	State    string `json:"State"`
	Pincode  string `json:"Pincode"`
}

// FilePart is a file attached to a multipart request.
type FilePart struct {
	// Field is the multipart field name.
	Field string
	// Name is the file name reported to the backend.
	Name string
	// Content is the file body.
	Content []byte
}

// RegisterRequest collects everything the signup flow gathered. Email must
// already be OTP-verified. ProfileImage is optional; without it the
// backend falls back to a generated avatar in AvatarColor.
type RegisterRequest struct {
	Email         string
	Username      string
	Password      string
	FullName      string
	Role          string
	DateOfBirth   string
	ContactNumber string
	City          string
	State         string
	AvatarColor   string
	ProfileImage  *FilePart
}

// ProfileDetails is the password-gated contact-details update.
type ProfileDetails struct {
	Password      string `json:"password"`
	ContactNumber string `json:"contact_number"`
	City          string `json:"city"`
	State         string `json:"state"`
}

// envelope is the uniform response contract.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
