// Command client signs and posts a video.asset.ready webhook to a running
// server, for exercising the ingest path locally.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"vidhub/internal/domain/dto"
	consts "vidhub/pkg/constants"
	"vidhub/pkg/signature"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", "http://localhost:3000", "server base URL")
	secret := flag.String("secret", os.Getenv("MUX_WEBHOOK_SECRET"), "webhook signing secret")
	handle := flag.String("upload", "", "upload handle the asset belongs to")
	duration := flag.Float64("duration", 125, "asset duration in seconds")
	eventType := flag.String("type", consts.EventAssetReady, "event type")
	flag.Parse()

	if *handle == "" || *secret == "" {
		flag.Usage()
		os.Exit(2)
	}

	assetID := "asset-" + uuid.NewString()
	data, err := json.Marshal(dto.AssetReadyData{
		ID:          assetID,
		UploadID:    *handle,
		Duration:    *duration,
		Status:      "ready",
		PlaybackIDs: []dto.PlaybackID{{ID: "pb-" + uuid.NewString(), Policy: "public"}},
	})
	if err != nil {
		log.Fatalf("encode data: %v", err)
	}
	body, err := json.Marshal(dto.WebhookEvent{ID: uuid.NewString(), Type: *eventType, Data: data})
	if err != nil {
		log.Fatalf("encode event: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, *server+"/api/v1/webhooks/mux", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Mux-Signature", signature.Sign(*secret, body, time.Now()))

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("post webhook: %v", err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("%d %s\n", resp.StatusCode, out)
}
