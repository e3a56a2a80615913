// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TFMV/TextClassifier/pkg/classifier"
	"github.com/TFMV/TextClassifier/pkg/store"
)

// TrainRequest is the body of POST /train.
type TrainRequest struct {
	Input []string `json:"input"`
	Label string   `json:"label"`
}

// PredictRequest is the body of POST /predict. Omitted limits fall back to
// the service defaults.
type PredictRequest struct {
	Input             string   `json:"input"`
	MaxMatches        *int     `json:"max_matches"`
	MinimumConfidence *float64 `json:"minimum_confidence"`
}

// RevisionResponse describes a stored model revision.
type RevisionResponse struct {
	Name     string    `json:"name"`
	Revision string    `json:"revision"`
	SavedAt  time.Time `json:"saved_at"`
}

func revisionResponse(rec store.Record) RevisionResponse {
	return RevisionResponse{Name: rec.Name, Revision: rec.Revision.String(), SavedAt: rec.SavedAt}
}

// NewRouter returns an engine with the service routes and middleware installed.
func NewRouter(svc *Service, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), ErrorHandler())
	SetupRoutes(router, svc)
	return router
}

// SetupRoutes registers the classifier endpoints on router.
func SetupRoutes(router gin.IRouter, svc *Service) {
	router.GET("/health", HealthCheckHandler(svc))
	router.POST("/train", TrainHandler(svc))
	router.POST("/predict", PredictHandler(svc))

	model := router.Group("/model")
	model.GET("", GetModelHandler(svc))
	model.PUT("", PutModelHandler(svc))
	model.POST("/save", SaveModelHandler(svc))
	model.POST("/load", LoadModelHandler(svc))
	model.GET("/revisions", RevisionsHandler(svc))
}

// HealthCheckHandler handles health check requests
func HealthCheckHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		zuluTime := time.Now().UTC().Format(time.RFC3339)
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"zuluTime": zuluTime,
			"labels":   len(svc.Labels()),
		})
	}
}

// TrainHandler handles training requests
func TrainHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}

		size, err := svc.Train(req.Input, req.Label)
		if err != nil {
			fail(c, err)
			return
		}

		resp := gin.H{"label": req.Label, "inputs": len(req.Input)}
		if size >= 0 {
			resp["vocabulary_size"] = size
		}
		c.JSON(http.StatusOK, resp)
	}
}

// PredictHandler handles prediction requests
func PredictHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}

		predictions, err := svc.Predict(req.Input, req.MaxMatches, req.MinimumConfidence)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"predictions": predictions})
	}
}

// GetModelHandler returns the current model snapshot
func GetModelHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Snapshot())
	}
}

// PutModelHandler replaces the model with the snapshot in the request body
func PutModelHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := classifier.DefaultSnapshot()
		if err := c.ShouldBindJSON(&snapshot); err != nil {
			fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		if err := svc.Replace(snapshot); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"labels": svc.Labels()})
	}
}

// SaveModelHandler persists the current model as a new revision
func SaveModelHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.Save(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, revisionResponse(rec))
	}
}

// LoadModelHandler replaces the model with its latest stored revision
func LoadModelHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.Reload(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, revisionResponse(rec))
	}
}

// RevisionsHandler lists the stored revisions of the model, newest first
func RevisionsHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.Revisions(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		revisions := make([]RevisionResponse, 0, len(records))
		for _, rec := range records {
			revisions = append(revisions, revisionResponse(rec))
		}
		c.JSON(http.StatusOK, gin.H{"revisions": revisions})
	}
}
