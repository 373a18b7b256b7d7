package domain

// ImageRemovalResult summarises one image removal run
type ImageRemovalResult struct {
	PageCount     int `json:"page_count"`
	ImagesRemoved int `json:"images_removed"`
}
