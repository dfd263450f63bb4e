package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"lingo-quest-service/models"
	"lingo-quest-service/services"
	"lingo-quest-service/utils"

	"gorm.io/gorm"
)

// AudioSyncClient drives the async narration pipeline: published lessons with
// pending audio get their clip synthesized and uploaded to R2.
type AudioSyncClient struct {
	DB  *gorm.DB
	Gen *services.GenerationClient
}

func NewAudioSyncClient(db *gorm.DB, gen *services.GenerationClient) *AudioSyncClient {
	return &AudioSyncClient{DB: db, Gen: gen}
}

// batchSize bounds synthesis work per tick so one slow clip can't starve the rest
const batchSize = 5

func (c *AudioSyncClient) syncOnce(ctx context.Context) {
	var lessons []models.Lesson
	err := c.DB.Where("status = ? AND audio_status = ?", models.LessonStatusPublished, models.AudioStatusPending).
		Order("created_at ASC").
		Limit(batchSize).
		Find(&lessons).Error
	if err != nil {
		log.Printf("❌ [AudioSync] DB error: %v", err)
		return
	}
	if len(lessons) == 0 {
		return
	}

	for _, lesson := range lessons {
		data, contentType, err := c.Gen.SynthesizeAudio(ctx, lesson.Body, lesson.Language)
		if err != nil {
			// Keep pending so the next tick retries; mark failed only on
			// an empty body, which will never synthesize.
			if lesson.Body == "" {
				c.DB.Model(&lesson).Update("audio_status", models.AudioStatusFailed)
			}
			log.Printf("❌ [AudioSync] synthesis failed for lesson %s: %v", lesson.ID, err)
			continue
		}

		key := fmt.Sprintf("audio/lessons/%s.mp3", lesson.ID)
		url, err := utils.UploadBytesToR2(ctx, key, data, contentType)
		if err != nil {
			log.Printf("❌ [AudioSync] upload failed for lesson %s: %v", lesson.ID, err)
			continue
		}

		if err := c.DB.Model(&lesson).Updates(map[string]interface{}{
			"audio_url":    url,
			"audio_status": models.AudioStatusReady,
		}).Error; err != nil {
			log.Printf("❌ [AudioSync] failed to save audio URL for lesson %s: %v", lesson.ID, err)
			continue
		}
		log.Printf("🔊 Audio ready for lesson %s (%s)", lesson.Slug, url)
	}
}

// PollLessonAudio runs the synthesis sweep until the context is cancelled.
func PollLessonAudio(ctx context.Context, client *AudioSyncClient, pollInterval time.Duration) {
	log.Println("Starting lesson audio polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Lesson audio polling stopped.")
			return
		case <-ticker.C:
			client.syncOnce(ctx)
		}
	}
}
