package appcontext

import (
	"github.com/SeakMengs/DocSign/internal/config"
	"github.com/SeakMengs/DocSign/internal/converter"
	filestorage "github.com/SeakMengs/DocSign/internal/file_storage"
	"github.com/SeakMengs/DocSign/pkg/docsign"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Storage keeps both converted and signed documents.
	Storage filestorage.Store

	// Converter turns uploaded DOCX files into PDF.
	Converter converter.Converter

	// Signer stamps the signature page. Fonts and layout are resolved once at startup.
	Signer *docsign.Signer
}
