// Package router maps the users HTTP API onto the service layer.
//
// Routes:
//
//	GET    /api/users          list every user
//	GET    /api/users/{id}     fetch one user
//	POST   /api/users          create a user
//	PUT    /api/users/{id}     replace a user's username, age and hobbies
//	DELETE /api/users/{id}     delete a user
//
// The id is the third path segment; anything after it is ignored. A GET
// with an empty id segment lists. Every other method and path gets a
// plain-text 404.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/patric-chuzhbe/usersapi/internal/logger"
	"github.com/patric-chuzhbe/usersapi/internal/models"
	"github.com/patric-chuzhbe/usersapi/internal/service"
	"github.com/patric-chuzhbe/usersapi/internal/user"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)

type usersService interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	CreateUser(ctx context.Context, body []byte) (user.User, error)
	ReplaceUser(ctx context.Context, id string, body []byte) (user.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type Router struct {
	service      usersService
	maxBodyBytes int64
}

type InitOption func(*initOptions)

type initOptions struct {
	maxBodyBytes     int64
	compressionLevel int
}

// WithMaxBodyBytes limits the size of POST and PUT bodies.
func WithMaxBodyBytes(maxBodyBytes int64) InitOption {
	return func(options *initOptions) {
		options.maxBodyBytes = maxBodyBytes
	}
}

// WithCompressionLevel enables gzip/deflate responses for clients that ask
// for them. Zero disables compression.
func WithCompressionLevel(level int) InitOption {
	return func(options *initOptions) {
		options.compressionLevel = level
	}
}

func writeText(res http.ResponseWriter, status int, message string) {
	res.Header().Set("Content-Type", contentTypeText)
	res.WriteHeader(status)
	_, err := res.Write([]byte(message))
	if err != nil {
		logger.Log.Debugln("error while writing the response:", err)
	}
}

func writeJSON(res http.ResponseWriter, status int, value interface{}) {
	body, err := json.Marshal(value)
	if err != nil {
		logger.Log.Errorln("error while encoding the response:", err)
		writeText(res, http.StatusInternalServerError, models.MessageInternalError)
		return
	}

	res.Header().Set("Content-Type", contentTypeJSON)
	res.WriteHeader(status)
	_, err = res.Write(body)
	if err != nil {
		logger.Log.Debugln("error while writing the response:", err)
	}
}

func writeInternalError(res http.ResponseWriter, err error) {
	logger.Log.Errorln("unexpected error while handling the request:", err)
	writeText(res, http.StatusInternalServerError, models.MessageInternalError)
}

// readBody reads the whole request body. It reports false after having
// answered the client itself, or when the client is gone.
func (router *Router) readBody(res http.ResponseWriter, req *http.Request) ([]byte, bool) {
	body := req.Body
	if router.maxBodyBytes > 0 {
		body = http.MaxBytesReader(res, req.Body, router.maxBodyBytes)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeText(res, http.StatusRequestEntityTooLarge, models.MessageBodyTooLarge)
			return nil, false
		}
		logger.Log.Debugln("request abandoned while reading the body:", err)
		return nil, false
	}

	return data, true
}

func (router *Router) GetApiusers(res http.ResponseWriter, req *http.Request) {
	users, err := router.service.ListUsers(req.Context())
	if err != nil {
		writeInternalError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, models.UsersListResponse{Users: users})
}

func (router *Router) GetApiusersID(res http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	if id == "" {
		router.GetApiusers(res, req)
		return
	}

	usr, err := router.service.GetUser(req.Context(), id)
	switch {
	case errors.Is(err, service.ErrInvalidID):
		writeText(res, http.StatusBadRequest, models.MessageInvalidID)
	case errors.Is(err, service.ErrUserNotFound):
		writeText(res, http.StatusNotFound, models.MessageIDDoesNotExist)
	case err != nil:
		writeInternalError(res, err)
	default:
		writeJSON(res, http.StatusOK, usr)
	}
}

func (router *Router) PostApiusers(res http.ResponseWriter, req *http.Request) {
	body, ok := router.readBody(res, req)
	if !ok {
		return
	}

	usr, err := router.service.CreateUser(req.Context(), body)
	switch {
	case errors.Is(err, service.ErrInvalidJSON):
		writeText(res, http.StatusBadRequest, models.MessageInvalidJSON)
	case errors.Is(err, service.ErrInvalidShape):
		writeText(res, http.StatusBadRequest, models.MessageInvalidData)
	case err != nil:
		writeInternalError(res, err)
	default:
		writeJSON(res, http.StatusCreated, usr)
	}
}

func (router *Router) PutApiusersID(res http.ResponseWriter, req *http.Request) {
	body, ok := router.readBody(res, req)
	if !ok {
		return
	}

	usr, err := router.service.ReplaceUser(req.Context(), chi.URLParam(req, "id"), body)
	switch {
	case errors.Is(err, service.ErrInvalidJSON):
		writeText(res, http.StatusBadRequest, models.MessageInvalidJSON)
	case errors.Is(err, service.ErrInvalidID):
		writeText(res, http.StatusBadRequest, models.MessageInvalidID)
	case errors.Is(err, service.ErrInvalidShape):
		writeText(res, http.StatusBadRequest, models.MessageInvalidData)
	case errors.Is(err, service.ErrUserNotFound):
		writeText(res, http.StatusNotFound, models.MessageUserNotFound)
	case err != nil:
		writeInternalError(res, err)
	default:
		writeJSON(res, http.StatusOK, usr)
	}
}

func (router *Router) DeleteApiusersID(res http.ResponseWriter, req *http.Request) {
	err := router.service.DeleteUser(req.Context(), chi.URLParam(req, "id"))
	switch {
	case errors.Is(err, service.ErrInvalidID):
		writeText(res, http.StatusBadRequest, models.MessageInvalidID)
	case errors.Is(err, service.ErrUserNotFound):
		writeText(res, http.StatusNotFound, models.MessageUserNotFound)
	case err != nil:
		writeInternalError(res, err)
	default:
		res.WriteHeader(http.StatusNoContent)
	}
}

func NotFound(res http.ResponseWriter, _ *http.Request) {
	writeText(res, http.StatusNotFound, models.MessageEndpointNotFound)
}

func New(usersService usersService, optionsProto ...InitOption) *chi.Mux {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	myRouter := Router{
		service:      usersService,
		maxBodyBytes: options.maxBodyBytes,
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		logger.WithLoggingHTTPMiddleware,
	)
	if options.compressionLevel > 0 {
		router.Use(middleware.Compress(options.compressionLevel, contentTypeJSON, contentTypeText))
	}

	router.NotFound(NotFound)
	router.MethodNotAllowed(NotFound)

	router.Get(`/api/users`, myRouter.GetApiusers)
	router.Get(`/api/users/`, myRouter.GetApiusers)
	router.Post(`/api/users`, myRouter.PostApiusers)
	router.Put(`/api/users/`, myRouter.PutApiusersID)
	router.Delete(`/api/users/`, myRouter.DeleteApiusersID)

	for _, pattern := range []string{`/api/users/{id}`, `/api/users/{id}/*`} {
		router.Get(pattern, myRouter.GetApiusersID)
		router.Put(pattern, myRouter.PutApiusersID)
		router.Delete(pattern, myRouter.DeleteApiusersID)
	}

	return router
}
