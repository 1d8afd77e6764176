package controller

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/SeakMengs/DocSign/internal/constant"
	filestorage "github.com/SeakMengs/DocSign/internal/file_storage"
	"github.com/SeakMengs/DocSign/internal/util"
	"github.com/SeakMengs/DocSign/pkg/docsign"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentController struct {
	*baseController
}

type SignerBody struct {
	ImageDataUrl string `json:"imageDataUrl"`
	Name         string `json:"name" binding:"omitempty,cmax=200"`
}

type SignBody struct {
	PdfId   string      `json:"pdfId" binding:"required,docid"`
	SignerA *SignerBody `json:"signerA"`
	SignerB *SignerBody `json:"signerB"`
	// append (default) or merge, case-insensitive
	Mode string `json:"mode"`
}

type WarningResponse struct {
	Side    docsign.Side `json:"side,omitempty"`
	Message string       `json:"message"`
}

type SignResponse struct {
	PdfId     string            `json:"pdfId"`
	ViewUrl   string            `json:"viewUrl"`
	Mode      string            `json:"mode"`
	PageCount int               `json:"pageCount"`
	Warnings  []WarningResponse `json:"warnings"`
}

var signBodyFields = map[string]string{
	"PdfId": "pdfId",
	"Mode":  "mode",
	"Name":  "name",
}

// Convert accepts a multipart "file" (.docx), stores the converted PDF and returns it as an attachment.
func (dc DocumentController) Convert(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "File is required", util.GenerateErrorMessages(err, "file"), nil)
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), constant.DOCX_EXTENSION) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Only .docx files are supported", util.GenerateErrorMessages(errors.New("file must be a .docx document"), "file"), nil)
		return
	}

	workDir, err := util.MkdirWorkDir(dc.app.Config.Converter.WorkDir, "convert_*")
	if err != nil {
		dc.app.Logger.Errorf("Failed to create work directory: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error preparing conversion", util.GenerateErrorMessages(err), nil)
		return
	}
	defer os.RemoveAll(workDir)

	srcPath := filepath.Join(workDir, uuid.NewString()+constant.DOCX_EXTENSION)
	if err := ctx.SaveUploadedFile(fileHeader, srcPath); err != nil {
		dc.app.Logger.Errorf("Failed to save upload %s: %v", fileHeader.Filename, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error saving uploaded file", util.GenerateErrorMessages(err), nil)
		return
	}

	dstPath := filepath.Join(workDir, "converted.pdf")
	if err := dc.app.Converter.Convert(ctx.Request.Context(), srcPath, dstPath); err != nil {
		dc.app.Logger.Errorf("Failed to convert %s: %v", fileHeader.Filename, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Conversion failed", util.GenerateErrorMessages(err, "file"), nil)
		return
	}

	data, err := os.ReadFile(dstPath)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error reading converted PDF", util.GenerateErrorMessages(err), nil)
		return
	}

	pdfId, err := dc.store(ctx.Request.Context(), data)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error storing converted PDF", util.GenerateErrorMessages(err), nil)
		return
	}

	dc.app.Logger.Infof("Converted %s to %s", fileHeader.Filename, pdfId)

	ctx.Header("Content-Disposition", util.AttachmentDisposition(util.ReplaceExt(fileHeader.Filename, ".pdf")))
	ctx.Header(constant.PDF_VIEW_URL_HEAD, util.ViewPath(pdfId))
	ctx.Data(http.StatusOK, constant.PDF_CONTENT_TYPE, data)
}

// Sign adds the signature page to a stored PDF and stores the result under a new id.
func (dc DocumentController) Sign(ctx *gin.Context) {
	var body SignBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request body", util.GenerateErrorMessages(err, signBodyFields), nil)
		return
	}

	signer := dc.app.Signer
	mode, err := docsign.ParseMode(body.Mode, signer.DefaultMode())
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid mode", util.GenerateErrorMessages(err, "mode"), nil)
		return
	}

	reqCtx := ctx.Request.Context()
	source, err := filestorage.ReadAll(reqCtx, dc.app.Storage, body.PdfId)
	if err != nil {
		if errors.Is(err, filestorage.ErrNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "PDF not found", util.GenerateErrorMessages(err, "pdfId"), nil)
			return
		}

		dc.app.Logger.Errorf("Failed to read %s: %v", body.PdfId, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error reading PDF", util.GenerateErrorMessages(err), nil)
		return
	}

	signedId, err := util.GenerateDocumentID()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error generating document id", util.GenerateErrorMessages(err), nil)
		return
	}

	var opts []docsign.SignOption
	if base := dc.app.Config.PublicBaseURL; base != "" {
		opts = append(opts, docsign.WithVerificationURL(base+util.ViewPath(signedId)))
	}

	result, err := signer.SignDocument(reqCtx, source, body.SignerA.toRequest(), body.SignerB.toRequest(), mode, opts...)
	if err != nil {
		dc.respondSignError(ctx, body.PdfId, err)
		return
	}

	warnings := make([]WarningResponse, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		dc.app.Logger.Warnw("Signature page rendered without an element", "pdfId", body.PdfId, "side", w.Side, "error", w.Err)
		warnings = append(warnings, WarningResponse{Side: w.Side, Message: w.Error()})
	}

	if err := dc.app.Storage.Put(reqCtx, signedId, bytes.NewReader(result.Bytes), int64(len(result.Bytes))); err != nil {
		dc.app.Logger.Errorf("Failed to store signed %s: %v", signedId, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error storing signed PDF", util.GenerateErrorMessages(err), nil)
		return
	}

	dc.app.Logger.Infof("Signed %s as %s (%s, %d pages)", body.PdfId, signedId, mode, result.PageCount)

	util.ResponseSuccess(ctx, SignResponse{
		PdfId:     signedId,
		ViewUrl:   util.ViewPath(signedId),
		Mode:      mode.String(),
		PageCount: result.PageCount,
		Warnings:  warnings,
	})
}

func (dc DocumentController) respondSignError(ctx *gin.Context, pdfId string, err error) {
	switch {
	case errors.Is(err, docsign.ErrEmptyDocument), errors.Is(err, docsign.ErrMalformedSourceDocument):
		dc.app.Logger.Infof("Rejected %s for signing: %v", pdfId, err)
		util.ResponseFailed(ctx, http.StatusUnprocessableEntity, "PDF cannot be signed", util.GenerateErrorMessages(err, "pdfId"), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		util.ResponseFailed(ctx, http.StatusRequestTimeout, "Request cancelled", util.GenerateErrorMessages(err), nil)
	default:
		dc.app.Logger.Errorf("Failed to sign %s: %v", pdfId, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error signing PDF", util.GenerateErrorMessages(err), nil)
	}
}

// View streams a stored PDF inline.
func (dc DocumentController) View(ctx *gin.Context) {
	pdfId := ctx.Param("pdfId")
	if !util.IsDocumentID(pdfId) {
		util.ResponseFailed(ctx, http.StatusNotFound, "PDF not found", util.GenerateErrorMessages(filestorage.ErrNotFound, "pdfId"), nil)
		return
	}

	rc, err := dc.app.Storage.Get(ctx.Request.Context(), pdfId)
	if err != nil {
		if errors.Is(err, filestorage.ErrNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "PDF not found", util.GenerateErrorMessages(err, "pdfId"), nil)
			return
		}

		dc.app.Logger.Errorf("Failed to open %s: %v", pdfId, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error reading PDF", util.GenerateErrorMessages(err), nil)
		return
	}
	defer rc.Close()

	ctx.DataFromReader(http.StatusOK, -1, constant.PDF_CONTENT_TYPE, rc, map[string]string{
		"Content-Disposition": `inline; filename="` + pdfId + `.pdf"`,
	})
}

func (dc DocumentController) store(ctx context.Context, data []byte) (string, error) {
	pdfId, err := util.GenerateDocumentID()
	if err != nil {
		return "", err
	}

	if err := dc.app.Storage.Put(ctx, pdfId, bytes.NewReader(data), int64(len(data))); err != nil {
		return "", err
	}

	return pdfId, nil
}

func (sb *SignerBody) toRequest() *docsign.SignerRequest {
	if sb == nil {
		return nil
	}

	return &docsign.SignerRequest{
		ImageDataURL: sb.ImageDataUrl,
		Name:         sb.Name,
	}
}
