package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/visiongate/visiongate/pkg/domain"
)

// ClassifyController handles classification requests over HTTP.
type ClassifyController struct {
	classificationService domain.ClassificationService
	validate              *validator.Validate
}

type ClassifyControllerDependencies struct {
	ClassificationService domain.ClassificationService
}

func NewClassifyController(deps ClassifyControllerDependencies) *ClassifyController {
	return &ClassifyController{
		classificationService: deps.ClassificationService,
		validate:              validator.New(),
	}
}

type ClassifyRequest struct {
	ImageURLs []string `json:"imageUrls" validate:"required,min=1"`
}

type StageResponse struct {
	Predictor string                   `json:"predictor"`
	Images    []domain.ImagePrediction `json:"images"`
	Averages  domain.TagAverages       `json:"averages"`
}

type ClassifyResponse struct {
	RequestID           string        `json:"requestId"`
	ImageCount          int           `json:"imageCount"`
	ImageURLs           []string      `json:"imageUrls"`
	Stage1              StageResponse `json:"stage1"`
	IsModel             bool          `json:"isModel"`
	Branch              string        `json:"branch"`
	Stage2              StageResponse `json:"stage2"`
	FinalTag            string        `json:"finalTag"`
	Probability         float64       `json:"probability"`
	HighConfidence      bool          `json:"highConfidence"`
	ConfidenceThreshold float64       `json:"confidenceThreshold"`
}

// Classify runs the two-stage pipeline for a batch of image URLs
func (c *ClassifyController) Classify(ctx fiber.Ctx) error {
	var req ClassifyRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: imageUrls must be a list of image URLs")
	}

	if err := c.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "imageUrls is required and must contain at least one image URL")
	}

	log.Info().Int("image_count", len(req.ImageURLs)).Msg("Classifying image batch")

	result, err := c.classificationService.Classify(ctx.RequestCtx(), domain.ClassifyParams{
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(toClassifyResponse(result))
}

func toClassifyResponse(result domain.ClassificationResult) ClassifyResponse {
	return ClassifyResponse{
		RequestID:  result.RequestID,
		ImageCount: len(result.ImageURLs),
		ImageURLs:  result.ImageURLs,
		Stage1: StageResponse{
			Predictor: string(result.Stage1.Predictor),
			Images:    result.Stage1.Images,
			Averages:  result.Stage1.Averages,
		},
		IsModel: result.IsModel,
		Branch:  string(result.Branch),
		Stage2: StageResponse{
			Predictor: string(result.Stage2.Predictor),
			Images:    result.Stage2.Images,
			Averages:  result.Stage2.Averages,
		},
		FinalTag:            result.FinalTag.Tag,
		Probability:         result.FinalTag.Probability,
		HighConfidence:      result.HighConfidence,
		ConfidenceThreshold: domain.ConfidenceThreshold,
	}
}
