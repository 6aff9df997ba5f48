package dto

type SOSRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	Message   string   `json:"message"`
}

type SOSResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type EmergencyContactRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Phone        string `json:"phone" binding:"required,max=20"`
	Relationship string `json:"relationship" binding:"max=50"`
	IsPrimary    bool   `json:"is_primary"`
}

type OfflineMapRequest struct {
	RegionName string   `json:"region_name" binding:"required,max=200"`
	CenterLat  *float64 `json:"center_lat" binding:"required,min=-90,max=90"`
	CenterLng  *float64 `json:"center_lng" binding:"required,min=-180,max=180"`
	ZoomLevel  int      `json:"zoom_level" binding:"omitempty,min=1,max=20"`
	FileSize   int64    `json:"file_size" binding:"min=0"`
}
