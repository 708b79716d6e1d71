// The checkin-lambda binary serves the same core as cmd/api behind an API
// Gateway proxy integration for serverless deployments.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/sivalingapandian/therapist-checkin/cmd/mainconfig"
	"github.com/sivalingapandian/therapist-checkin/internal/api/respond"
	"github.com/sivalingapandian/therapist-checkin/internal/apperr"
	appconfig "github.com/sivalingapandian/therapist-checkin/internal/config"
	"github.com/sivalingapandian/therapist-checkin/internal/directory"
	"github.com/sivalingapandian/therapist-checkin/internal/notify"
	"github.com/sivalingapandian/therapist-checkin/internal/scheduling"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

type app struct {
	directory  *directory.Service
	engine     *scheduling.Engine
	apiToken   string
	corsOrigin string
	logger     *logging.Logger
}

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		panic(err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	therapistRepo := directory.NewDynamoStore(dynamoClient, cfg.TherapistsTable, logger)
	appointmentRepo := scheduling.NewDynamoStore(dynamoClient, cfg.AppointmentsTable, cfg.TherapistDateIndexName, logger)

	emailSender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
		FromEmail: cfg.NotificationEmail,
		FromName:  cfg.NotificationFromName,
	}, logger)
	smsSender := notify.NewSNSSender(sns.NewFromConfig(awsCfg), cfg.SMSSenderID, logger)

	directorySvc := directory.NewService(therapistRepo, logger)
	dispatcher := notify.NewDispatcher(emailSender, smsSender, nil, logger)
	engine := scheduling.NewEngine(appointmentRepo, directorySvc, dispatcher, nil, logger)

	corsOrigin := "*"
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsOrigin = cfg.CORSAllowedOrigins[0]
	}

	a := &app{
		directory:  directorySvc,
		engine:     engine,
		apiToken:   cfg.APIToken,
		corsOrigin: corsOrigin,
		logger:     logger,
	}
	lambda.Start(a.handle)
}

func (a *app) handle(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if evt.HTTPMethod == http.MethodOptions {
		return a.reply(http.StatusOK, nil), nil
	}

	if !a.authorized(evt) {
		return a.reply(http.StatusUnauthorized, respond.Message{Message: "unauthorized"}), nil
	}

	path := strings.TrimSuffix(evt.Path, "/")
	switch {
	case path == "/therapists":
		return a.therapists(ctx, evt), nil
	case strings.HasPrefix(path, "/therapists/"):
		return a.therapistByID(ctx, evt, strings.TrimPrefix(path, "/therapists/")), nil
	case path == "/appointments":
		return a.appointments(ctx, evt), nil
	case path == "/check-in" && evt.HTTPMethod == http.MethodPost:
		return a.checkIn(ctx, evt), nil
	}
	return a.reply(http.StatusNotFound, respond.Message{Message: "not found"}), nil
}

func (a *app) therapists(ctx context.Context, evt events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	switch evt.HTTPMethod {
	case http.MethodGet:
		therapists, err := a.directory.List(ctx)
		if err != nil {
			return a.fail(err)
		}
		if therapists == nil {
			therapists = []*directory.Therapist{}
		}
		return a.reply(http.StatusOK, therapists)
	case http.MethodPost:
		var req directory.CreateTherapistRequest
		if err := json.Unmarshal([]byte(evt.Body), &req); err != nil {
			return a.reply(http.StatusBadRequest, respond.Message{Message: "invalid request body"})
		}
		therapist, err := a.directory.Create(ctx, req)
		if err != nil {
			return a.fail(err)
		}
		return a.reply(http.StatusCreated, therapist)
	}
	return a.reply(http.StatusBadRequest, respond.Message{Message: "unsupported method"})
}

func (a *app) therapistByID(ctx context.Context, evt events.APIGatewayProxyRequest, id string) events.APIGatewayProxyResponse {
	switch evt.HTTPMethod {
	case http.MethodGet:
		therapist, err := a.directory.Get(ctx, id)
		if err != nil {
			return a.fail(err)
		}
		if therapist == nil {
			return a.reply(http.StatusNotFound, respond.Message{Message: "therapist not found"})
		}
		return a.reply(http.StatusOK, therapist)
	case http.MethodPut:
		var fields directory.UpdateTherapistFields
		if err := json.Unmarshal([]byte(evt.Body), &fields); err != nil {
			return a.reply(http.StatusBadRequest, respond.Message{Message: "invalid request body"})
		}
		if err := a.directory.Update(ctx, id, fields); err != nil {
			return a.fail(err)
		}
		therapist, err := a.directory.Get(ctx, id)
		if err != nil {
			return a.fail(err)
		}
		if therapist == nil {
			return a.reply(http.StatusNotFound, respond.Message{Message: "therapist not found"})
		}
		return a.reply(http.StatusOK, therapist)
	case http.MethodDelete:
		if err := a.directory.Delete(ctx, id); err != nil {
			return a.fail(err)
		}
		return a.reply(http.StatusOK, respond.Message{Message: "therapist deleted successfully"})
	}
	return a.reply(http.StatusBadRequest, respond.Message{Message: "unsupported method"})
}

func (a *app) appointments(ctx context.Context, evt events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	switch evt.HTTPMethod {
	case http.MethodGet:
		records, err := a.engine.ListByTherapistAndDate(ctx,
			evt.QueryStringParameters["therapistId"],
			evt.QueryStringParameters["date"],
		)
		if err != nil {
			return a.fail(err)
		}
		if records == nil {
			records = []*scheduling.Appointment{}
		}
		return a.reply(http.StatusOK, records)
	case http.MethodPost:
		var req scheduling.CreateAppointmentRequest
		if err := json.Unmarshal([]byte(evt.Body), &req); err != nil {
			return a.reply(http.StatusBadRequest, respond.Message{Message: "invalid request body"})
		}
		appointment, err := a.engine.CreateAppointment(ctx, req)
		if err != nil {
			return a.fail(err)
		}
		return a.reply(http.StatusCreated, appointment)
	}
	return a.reply(http.StatusBadRequest, respond.Message{Message: "unsupported method"})
}

func (a *app) checkIn(ctx context.Context, evt events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var req scheduling.CreateCheckInRequest
	if err := json.Unmarshal([]byte(evt.Body), &req); err != nil {
		return a.reply(http.StatusBadRequest, respond.Message{Message: "invalid request body"})
	}
	record, err := a.engine.CreateCheckIn(ctx, req)
	if err != nil {
		return a.fail(err)
	}
	return a.reply(http.StatusOK, scheduling.CheckInResponse{
		Message: "Check-in completed successfully",
		CheckIn: record,
	})
}

func (a *app) authorized(evt events.APIGatewayProxyRequest) bool {
	token := evt.Headers["x-api-key"]
	if token == "" {
		token = evt.Headers["X-Api-Key"]
	}
	if a.apiToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.apiToken)) == 1
}

func (a *app) fail(err error) events.APIGatewayProxyResponse {
	status := respond.StatusOf(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err)
		return a.reply(status, respond.Message{Message: "internal server error"})
	}
	return a.reply(status, respond.Message{Message: apperr.MessageOf(err)})
}

func (a *app) reply(status int, body any) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  a.corsOrigin,
			"Access-Control-Allow-Headers": "Content-Type,x-api-key",
			"Access-Control-Allow-Methods": "OPTIONS,POST,GET,PUT,DELETE",
		},
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.logger.Error("failed to marshal response", "error", err)
			resp.StatusCode = http.StatusInternalServerError
			resp.Body = `{"message":"internal server error"}`
			return resp
		}
		resp.Body = string(raw)
	}
	return resp
}
