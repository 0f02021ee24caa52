package dto

// DirectUpload is the provider-issued upload target handed to clients.
type DirectUpload struct {
	UploadURL string `json:"uploadUrl"`
	UploadID  string `json:"uploadId"`
}
