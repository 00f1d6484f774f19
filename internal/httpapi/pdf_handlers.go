package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shivakushwah143/SecondBrain/internal/docs"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

const maxPDFSize = 10 << 20 // 10MB

func (s *Server) uploadPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No PDF file uploaded"})
		return
	}
	if fileHeader.Size > maxPDFSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "PDF exceeds the 10MB limit"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only PDF files are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("PDF open error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process PDF"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPDFSize))
	if err != nil {
		log.Printf("PDF read error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process PDF"})
		return
	}

	text, err := docs.ExtractText(data)
	if err != nil {
		log.Printf("PDF extraction error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not extract text from this PDF"})
		return
	}

	userID := c.GetString("userID")
	chunks := docs.Chunk(text)
	collectionName := newCollectionName(userID)

	doc := &models.Document{
		DocumentID:   uuid.New().String(),
		UserID:       userID,
		Name:         collectionName,
		OriginalName: fileHeader.Filename,
	}

	ctx := c.Request.Context()
	if err := s.documents.Create(ctx, doc, chunks); err != nil {
		log.Printf("Document create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process PDF"})
		return
	}

	for i, chunk := range chunks {
		itemID := fmt.Sprintf("%s:%d", doc.DocumentID, i)
		if err := s.vectors.Upsert(ctx, collectionName, itemID, docs.Embed(chunk)); err != nil {
			log.Printf("Vector upsert error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to index PDF"})
			return
		}
	}

	// The uploaded document also shows up as a saved content item.
	content := &models.Content{
		ContentID: uuid.New().String(),
		UserID:    userID,
		Title:     strings.TrimSuffix(fileHeader.Filename, ".pdf"),
		Link:      "/pdf/" + doc.DocumentID,
		Type:      models.ContentTypePDF,
		Tags:      []string{"pdf", "document", "uploaded"},
	}
	if err := s.contents.Create(ctx, content); err != nil {
		log.Printf("PDF content create error: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "PDF processed and indexed successfully",
		"data": gin.H{
			"collectionName": collectionName,
			"chunks":         len(chunks),
			"contentId":      content.ContentID,
			"collectionId":   doc.DocumentID,
			"originalName":   fileHeader.Filename,
			"userId":         userID,
		},
	})
}

func (s *Server) listCollections(c *gin.Context) {
	collections, err := s.documents.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		log.Printf("Get collections error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if collections == nil {
		collections = []*models.Document{}
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"count":       len(collections),
	})
}

func (s *Server) chatWithPDF(c *gin.Context) {
	var input struct {
		Query          string `json:"query"`
		CollectionName string `json:"collectionName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Query == "" || input.CollectionName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Query and collection name required"})
		return
	}

	ctx := c.Request.Context()
	doc, err := s.documents.GetByName(ctx, input.CollectionName, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "PDF collection not found or access denied"})
		return
	}

	results := s.vectors.Search(input.CollectionName, docs.Embed(input.Query), 5)
	if len(results) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"response":       "I couldn't find relevant information in this document to answer your question.",
			"relevantChunks": 0,
			"collectionName": doc.OriginalName,
		})
		return
	}

	var excerpts []string
	for _, result := range results {
		index, ok := chunkIndexFromItemID(result.ID, doc.DocumentID)
		if !ok {
			continue
		}
		body, err := s.documents.GetChunk(ctx, doc.DocumentID, index)
		if err != nil {
			log.Printf("Chunk fetch error: %v", err)
			continue
		}
		excerpts = append(excerpts, body)
	}

	if !s.ai.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "AI service not configured"})
		return
	}

	response, err := s.ai.AnswerFromDocument(ctx, input.Query, excerpts)
	if err != nil {
		log.Printf("PDF chat error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process PDF chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":       response,
		"relevantChunks": len(excerpts),
		"collectionName": doc.OriginalName,
		"query":          input.Query,
	})
}

// newCollectionName builds a per-upload identifier safe for use as an index
// key, unique across re-uploads of the same file.
func newCollectionName(userID string) string {
	suffix := make([]byte, 4)
	rand.Read(suffix)

	name := fmt.Sprintf("user_%s_%d_%s", userID, time.Now().UnixMilli(), hex.EncodeToString(suffix))
	name = strings.ToLower(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
	if len(name) > 50 {
		name = name[:50]
	}
	return name
}

func chunkIndexFromItemID(itemID, documentID string) (int, bool) {
	raw, found := strings.CutPrefix(itemID, documentID+":")
	if !found {
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return index, true
}
