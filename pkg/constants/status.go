package constants

const (
	StatusOK = "ok"

	VideoStateProcessing = "processing"
	VideoStateReady      = "ready"

	OrderLatest  = "latest"
	OrderPopular = "popular"

	// Provider event types.
	EventAssetReady = "video.asset.ready"
)
