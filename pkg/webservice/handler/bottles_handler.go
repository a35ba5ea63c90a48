package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/imagestore"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/util"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/middleware"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/route"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/serializers"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
	"github.com/gin-gonic/gin"
)

// MessageReader is implemented by services.MessageService.
type MessageReader interface {
	BottleInfo(ctx context.Context, bottleID int64) (tree.Node, error)
	ListMessages(ctx context.Context, bottleID int64, params models.ListMessagesParams, urls util.URLBuilder) (tree.Node, error)
	Message(ctx context.Context, bottleID, messageID int64, urls util.URLBuilder) (tree.Node, error)
}

// MessageWriter is implemented by services.BatchService.
type MessageWriter interface {
	InsertMessages(ctx context.Context, bottleID int64, items []models.MessageInput) (int, error)
	InsertMessage(ctx context.Context, bottleID, messageID int64, in models.MessageInput) error
	MarkDeleted(ctx context.Context, bottleID int64, ids []int64, date string) error
}

type ImageReader interface {
	Read(bottleID, messageID int64) ([]byte, error)
}

type Options struct {
	BaseURL    string
	Debug      bool
	ServerName string
}

// BottlesController dispatches every /bottles request. It is installed as
// the gin NoRoute handler so that it sees the raw request URI.
type BottlesController struct {
	reader MessageReader
	writer MessageWriter
	images ImageReader
	opts   Options
}

func NewBottlesController(reader MessageReader, writer MessageWriter, images ImageReader, opts Options) *BottlesController {
	return &BottlesController{reader: reader, writer: writer, images: images, opts: opts}
}

// outcome is a successful result. A nil body with status 200 never occurs:
// empty reads are turned into 204.
type outcome struct {
	status   int
	body     tree.Node
	location string
	image    []byte
}

func found(n tree.Node) outcome {
	if n == nil {
		return outcome{status: http.StatusNoContent}
	}
	return outcome{status: http.StatusOK, body: n}
}

// Dispatch handles one request from URI to response.
func (c *BottlesController) Dispatch(ctx *gin.Context) {
	uri := ctx.Request.RequestURI
	if uri == "" {
		uri = ctx.Request.URL.RequestURI()
	}

	var decision route.Decision
	var r route.Route
	if path, ok := route.StripBase(uri, c.opts.BaseURL); ok {
		r = route.Parse(path)
		q := ctx.Request.URL.Query()
		decision = route.Resolve(r, ctx.Request.Method, route.Flags{DeleteDate: q.Has(models.DeleteDateParam)})
	}

	res, err := c.execute(ctx, r, decision)
	if err != nil {
		c.fail(ctx, decision, err)
		return
	}
	c.respond(ctx, serializers.ForFormat(r.Format()), res)
}

func (c *BottlesController) execute(ctx *gin.Context, r route.Route, d route.Decision) (outcome, error) {
	switch d.Op {
	case route.NotFound:
		return outcome{}, problem.NewNotFound("")
	case route.MethodNotAllowed:
		return outcome{}, problem.NewMethodNotAllowed(d.Allow)
	}

	reqCtx := ctx.Request.Context()
	query := ctx.Request.URL.Query()
	urls := c.urls(ctx)

	bottleID, err := parseID("bottle", r.BottleID())
	if err != nil {
		return outcome{}, err
	}

	switch d.Op {
	case route.GetBottleInfo:
		n, err := c.reader.BottleInfo(reqCtx, bottleID)
		return found(n), err

	case route.ListMessages:
		params, err := models.NewListMessagesParams(query)
		if err != nil {
			return outcome{}, err
		}
		n, err := c.reader.ListMessages(reqCtx, bottleID, params, urls)
		return found(n), err

	case route.InsertBatch:
		items, err := util.DecodeMessages(ctx.Request.Body)
		if err != nil {
			return outcome{}, err
		}
		n, err := c.writer.InsertMessages(reqCtx, bottleID, items)
		if err != nil {
			return outcome{}, err
		}
		return outcome{status: http.StatusCreated, location: urls.MessagesURL(bottleID, n)}, nil

	case route.MarkDeletedBatch:
		ids, err := util.DecodeIDs(ctx.Request.Body)
		if err != nil {
			return outcome{}, err
		}
		if err := c.writer.MarkDeleted(reqCtx, bottleID, ids, query.Get(models.DeleteDateParam)); err != nil {
			return outcome{}, err
		}
		return outcome{status: http.StatusNoContent}, nil
	}

	messageID, err := parseID("message", r.MessageID())
	if err != nil {
		return outcome{}, err
	}

	switch d.Op {
	case route.FetchImage:
		return c.image(bottleID, messageID)

	case route.GetSingleMessage:
		n, err := c.reader.Message(reqCtx, bottleID, messageID, urls)
		return found(n), err

	case route.InsertSingle:
		in, err := util.DecodeMessage(ctx.Request.Body)
		if err != nil {
			return outcome{}, err
		}
		if err := c.writer.InsertMessage(reqCtx, bottleID, messageID, in); err != nil {
			return outcome{}, err
		}
		return outcome{status: http.StatusCreated, location: urls.MessageURL(bottleID, messageID)}, nil
	}

	return outcome{}, fmt.Errorf("unhandled operation %s", d.Op)
}

func (c *BottlesController) image(bottleID, messageID int64) (outcome, error) {
	data, err := c.images.Read(bottleID, messageID)
	if errors.Is(err, imagestore.ErrNotFound) {
		return outcome{}, problem.NewNotFound("no image stored for this message")
	}
	if err != nil {
		return outcome{}, problem.NewUnavailable(err)
	}
	img, err := imagestore.ReencodePNG(data)
	if err != nil {
		return outcome{}, problem.NewNotFound(err.Error())
	}
	return outcome{status: http.StatusOK, image: img}, nil
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, problem.NewBadRequest(fmt.Sprintf("invalid %s ID %q", name, raw),
			problem.InvalidParam{Name: name, Reason: "must be an integer"})
	}
	return id, nil
}

func (c *BottlesController) urls(ctx *gin.Context) util.URLBuilder {
	host := c.opts.ServerName
	if host == "" {
		host = ctx.Request.Host
	}
	return util.URLBuilder{Host: host}
}

func (c *BottlesController) respond(ctx *gin.Context, format serializers.Format, res outcome) {
	switch {
	case res.image != nil:
		ctx.Data(res.status, "image/png", res.image)
	case res.body != nil:
		body, err := serializers.Render(format, res.body)
		if err != nil {
			c.fail(ctx, route.Decision{}, problem.NewUnavailable(fmt.Errorf("render %s: %w", format, err)))
			return
		}
		ctx.Data(res.status, format.ContentType(), body)
	default:
		if res.location != "" {
			ctx.Header("Location", res.location)
		}
		statusOnly(ctx, res.status)
	}
}

func (c *BottlesController) fail(ctx *gin.Context, d route.Decision, err error) {
	apiErr := problem.From(err)
	if apiErr.Status == http.StatusServiceUnavailable {
		log.Printf("[dispatch] request=%s %s %s op=%s: %v",
			middleware.GetRequestID(ctx), ctx.Request.Method, ctx.Request.URL.Path, d.Op, err)
	}
	if apiErr.Allow != "" {
		ctx.Header("Allow", apiErr.Allow)
	}

	if c.opts.Debug && hasDebugBody(apiErr.Status) {
		if detail := debugDetail(apiErr); detail != "" {
			ctx.Data(apiErr.Status, "text/plain", []byte(detail))
			return
		}
	}
	statusOnly(ctx, apiErr.Status)
}

func hasDebugBody(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusServiceUnavailable
}

func debugDetail(e problem.APIError) string {
	var b strings.Builder
	b.WriteString(e.Detail)
	for _, p := range e.InvalidParams {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Name + ": " + p.Reason)
	}
	return b.String()
}

// statusOnly writes a response without body. gin writes its own 404 page
// for NoRoute handlers unless the header is flushed here.
func statusOnly(ctx *gin.Context, status int) {
	ctx.Status(status)
	ctx.Writer.WriteHeaderNow()
}
