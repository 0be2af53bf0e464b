package rest

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"filevault-api/internal/application/ports"
	"filevault-api/internal/domain/user"
	filedto "filevault-api/internal/interface/api/rest/dto/file_record"
	"filevault-api/internal/interface/api/rest/middleware"
)

const formFileField = "file"

// multipart framing on top of the file itself
const multipartOverhead = int64(1 << 20)

type FileController struct {
	fileService    ports.FileService
	userService    ports.UserService
	logger         *zap.Logger
	maxUploadBytes int64
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	userService ports.UserService,
	logger *zap.Logger,
	tokens ports.TokenManager,
	maxUploadBytes int64,
) *FileController {
	fc := &FileController{
		fileService:    fileService,
		userService:    userService,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}

	authz := middleware.AuthMiddleware(tokens)
	r.POST(RouteFileUpload, authz, fc.UploadHandler)
	r.GET(RouteFiles, authz, fc.ListHandler)
	r.GET(RouteFilesReconcile, authz, fc.ReconcileHandler)
	r.GET(RouteFileDownload, authz, fc.DownloadHandler)
	r.DELETE(RouteFile, authz, fc.DeleteHandler)

	return fc
}

// currentUser resolves the authenticated account. A valid token whose user
// no longer exists is treated as unauthenticated.
func (fc *FileController) currentUser(c *gin.Context) (*user.User, bool) {
	username := c.GetString(middleware.CtxUsername)
	if username == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	u, err := fc.userService.FindByUsername(c.Request.Context(), username)
	if err != nil {
		fc.logger.Error("FindByUsername() error", zap.String("username", username), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	if u == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	return u, true
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	owner, ok := fc.currentUser(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, fc.maxUploadBytes+multipartOverhead)

	fh, err := c.FormFile(formFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > fc.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, fc.logger, "FormFile.Open()", err)
		return
	}
	defer f.Close()

	rec, err := fc.fileService.Upload(c.Request.Context(), owner, ports.UploadInput{
		Content:      f,
		OriginalName: clientFileName(fh),
		ContentType:  fh.Header.Get("Content-Type"),
		Size:         fh.Size,
	})
	if err != nil {
		writeError(c, fc.logger, "Upload()", err)
		return
	}

	c.JSON(http.StatusCreated, filedto.ToResponseFileRecord(*rec))
}

func (fc *FileController) ListHandler(c *gin.Context) {
	owner, ok := fc.currentUser(c)
	if !ok {
		return
	}

	recs, err := fc.fileService.List(c.Request.Context(), owner)
	if err != nil {
		writeError(c, fc.logger, "List()", err)
		return
	}

	c.JSON(http.StatusOK, filedto.ToResponseFileRecords(recs))
}

func (fc *FileController) DownloadHandler(c *gin.Context) {
	owner, ok := fc.currentUser(c)
	if !ok {
		return
	}

	rec, rc, err := fc.fileService.Download(c.Request.Context(), owner, c.Param(ParamStoredFileName))
	if err != nil {
		writeError(c, fc.logger, "Download()", err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, rec.SizeBytes, rec.ContentType, rc, map[string]string{
		"Content-Disposition": contentDisposition(rec.FileName),
	})
}

func (fc *FileController) DeleteHandler(c *gin.Context) {
	owner, ok := fc.currentUser(c)
	if !ok {
		return
	}

	if _, err := fc.fileService.Delete(c.Request.Context(), owner, c.Param(ParamStoredFileName)); err != nil {
		writeError(c, fc.logger, "Delete()", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

func (fc *FileController) ReconcileHandler(c *gin.Context) {
	owner, ok := fc.currentUser(c)
	if !ok {
		return
	}

	report, err := fc.fileService.Reconcile(c.Request.Context(), owner)
	if err != nil {
		writeError(c, fc.logger, "Reconcile()", err)
		return
	}

	c.JSON(http.StatusOK, filedto.ToReconcileReport(*report))
}

// clientFileName returns the file name exactly as the client sent it.
// FileHeader.Filename has already been reduced to its base name, which
// would hide traversal attempts from the storage checks.
func clientFileName(fh *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(fh.Header.Get("Content-Disposition"))
	if err != nil {
		return fh.Filename
	}
	if name, ok := params["filename"]; ok {
		return name
	}
	return fh.Filename
}

// contentDisposition builds an attachment header. Non-ASCII names get an
// ASCII fallback plus an RFC 5987 filename* parameter.
func contentDisposition(name string) string {
	fallback := asciiFileName(name)
	if fallback == name {
		return `attachment; filename="` + name + `"`
	}

	encoded := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return `attachment; filename="` + fallback + `"; filename*=UTF-8''` + encoded
}

// asciiFileName strips diacritics and replaces what is left outside
// printable ASCII, along with quotes and backslashes.
func asciiFileName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('_')
		case r < 0x20 || r > 0x7e:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
