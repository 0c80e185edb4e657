package routes

import (
	"github.com/gofiber/fiber/v2"

	"pitchdesk-backend/controllers"
	"pitchdesk-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Public calculator + text tooling (no document access)
	api.Get("/catalog", controllers.GetCatalog)
	api.Post("/quote", controllers.ComputeQuote)
	api.Post("/text/scan", controllers.ScanText)

	// Public share-token routes: /p/:token (proposal view) and
	// /c/:token-equivalents for contract signing.
	api.Get("/p/:token", controllers.ViewSharedProposal)
	api.Post("/p/:token/accept", controllers.AcceptSharedProposal)
	api.Post("/p/:token/reject", controllers.RejectSharedProposal)
	api.Get("/contracts/view/:token", controllers.ViewContractByToken)
	api.Post("/contracts/sign/:token", controllers.SignContractByToken)

	// Comments are reachable by share-link recipients, so they stay public;
	// authorship is carried in the payload.
	api.Get("/proposals/:id/comments", controllers.ListProposalComments)
	api.Post("/proposals/:id/comments", controllers.CreateProposalComment)
	api.Post("/proposals/:id/comments/:cid/resolve", controllers.ResolveProposalComment)
	api.Get("/contracts/:id/comments", controllers.ListContractComments)
	api.Post("/contracts/:id/comments", controllers.CreateContractComment)
	api.Post("/contracts/:id/comments/:cid/resolve", controllers.ResolveContractComment)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard for mutating requests
	protected.Use(middlewares.Idempotency())

	// Clients
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/client/:id", controllers.GetClient)
	protected.Put("/client/:id", controllers.UpdateClient)

	// Proposals
	protected.Post("/proposals", controllers.CreateProposal)
	protected.Get("/proposals", controllers.GetProposals)
	protected.Get("/proposals/:id", controllers.GetProposal)
	protected.Patch("/proposals/:id", controllers.UpdateProposal)
	protected.Delete("/proposals/:id", controllers.DeleteProposal)
	protected.Post("/proposals/:id/send", controllers.SendProposal)
	protected.Get("/proposals/:id/pdf", controllers.ExportProposalPDF)

	// Contracts
	protected.Post("/contracts", controllers.CreateContract)
	protected.Get("/contracts", controllers.GetContracts)
	protected.Get("/contracts/:id", controllers.GetContract)
	protected.Patch("/contracts/:id", controllers.UpdateContract)
	protected.Post("/contracts/:id/send", controllers.SendContract)
	protected.Post("/contracts/:id/cancel", controllers.CancelContract)
	protected.Post("/contracts/:id/countersign", controllers.CountersignContract)
	protected.Get("/contracts/:id/pdf", controllers.ExportContractPDF)

	// Invoices
	protected.Post("/invoices", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoices/:id", controllers.GetInvoice)
	protected.Put("/invoices/:id", controllers.UpdateInvoice)
	protected.Post("/invoices/:id/send", controllers.SendInvoice)
	protected.Patch("/invoices/:id/status", controllers.UpdateInvoiceStatus)

	// Sharing links
	protected.Post("/links", controllers.CreateShareLink)

	// External collaborators
	protected.Post("/files/upload", controllers.UploadFile)
	protected.Get("/images/search", controllers.SearchImages)
	protected.Post("/images/track-download", controllers.TrackImageDownload)
	protected.Post("/ai/enhance", controllers.EnhanceContent)
	protected.Post("/ai/proposal", controllers.GenerateProposalContent)
	protected.Post("/email/send", controllers.SendEmail)
}
