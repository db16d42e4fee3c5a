package httpdto

// PresignImageRequest is used for POST /uploads/images
type PresignImageRequest struct {
	Kind        string `json:"kind" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Size        int64  `json:"size" binding:"required"`
}

type PresignedUpload struct {
	UploadURL string            `json:"uploadUrl"`
	Headers   map[string]string `json:"headers"`
	Key       string            `json:"key"`
	PublicURL string            `json:"publicUrl,omitempty"`
}

type PresignImageResponse struct {
	OK     bool            `json:"ok"`
	Upload PresignedUpload `json:"upload"`
}
