package controllers

import (
	"encoding/json"
	"time"

	"pitchdesk-backend/database"
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/models"
	"pitchdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type contractCreateDTO struct {
	Title         string   `json:"title" validate:"required"`
	Content       string   `json:"content"`
	ClientName    string   `json:"client_name"`
	ClientCompany string   `json:"client_company"`
	ClientEmail   string   `json:"client_email" validate:"omitempty,email"`
	ClientPhone   string   `json:"client_phone"`
	ClientAddress string   `json:"client_address"`
	Deliverables  []string `json:"deliverables"`
}

type contractPatchDTO struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	ClientName    *string   `json:"client_name"`
	ClientCompany *string   `json:"client_company"`
	ClientEmail   *string   `json:"client_email" validate:"omitempty,email"`
	ClientPhone   *string   `json:"client_phone"`
	ClientAddress *string   `json:"client_address"`
	Deliverables  *[]string `json:"deliverables"`
}

type signContractDTO struct {
	SignerName    string `json:"signer_name" validate:"required"`
	SignerEmail   string `json:"signer_email" validate:"omitempty,email"`
	SignatureData string `json:"signature_data" validate:"required"`
}

type countersignDTO struct {
	SignatureData string `json:"signature_data" validate:"required"`
}

func findOwnedContract(c *fiber.Ctx, contract *models.Contract) error {
	err := database.DB.Where("id = ? AND user_id = ?", c.Params("id"), currentUserID(c)).First(contract).Error
	if err == gorm.ErrRecordNotFound {
		return fiber.ErrNotFound
	}
	return err
}

func deliverablesJSON(items []string) (datatypes.JSON, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func CreateContract(c *fiber.Ctx) error {
	var data contractCreateDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	utils.NormalizeDTO(&data)

	deliverables, err := deliverablesJSON(data.Deliverables)
	if err != nil {
		return err
	}

	contract := models.Contract{
		UserID:        currentUserID(c),
		Title:         data.Title,
		Content:       data.Content,
		Status:        models.ContractDraft,
		ClientName:    data.ClientName,
		ClientCompany: data.ClientCompany,
		ClientEmail:   data.ClientEmail,
		ClientPhone:   data.ClientPhone,
		ClientAddress: data.ClientAddress,
		Deliverables:  deliverables,
	}

	if err := database.DB.Create(&contract).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not create contract",
			"error":   err.Error(),
		})
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(contract)
}

func GetContracts(c *fiber.Ctx) error {
	var contracts []models.Contract
	database.DB.Where("user_id = ?", currentUserID(c)).Order("updated_at DESC").Find(&contracts)
	return c.JSON(fiber.Map{
		"contracts": contracts,
	})
}

func GetContract(c *fiber.Ctx) error {
	var contract models.Contract
	if err := findOwnedContract(c, &contract); err != nil {
		return err
	}
	return c.JSON(contract)
}

func UpdateContract(c *fiber.Ctx) error {
	var contract models.Contract
	if err := findOwnedContract(c, &contract); err != nil {
		return err
	}
	if !contract.Editable() {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "contract can only be edited in draft",
		})
	}

	var patch contractPatchDTO
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&patch)

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	delete(updates, "deliverables")
	if patch.Deliverables != nil {
		deliverables, err := deliverablesJSON(*patch.Deliverables)
		if err != nil {
			return err
		}
		updates["deliverables"] = deliverables
	}

	if len(updates) == 0 {
		return c.JSON(contract)
	}

	if err := database.DB.Model(&contract).Updates(updates).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not update contract",
			"error":   err.Error(),
		})
	}
	return c.JSON(contract)
}

// SendContract moves a draft to sent and emails the public signing URL.
// The access token is minted on first send and kept stable afterwards.
func SendContract(c *fiber.Ctx) error {
	var contract models.Contract
	if err := findOwnedContract(c, &contract); err != nil {
		return err
	}
	if contract.ClientEmail == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "client email is required to send",
		})
	}
	if !contract.CanTransition(models.ContractSent) {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "contract cannot be sent from status " + contract.Status,
		})
	}

	if contract.AccessToken == "" {
		contract.AccessToken = uuid.NewString()
	}
	signingURL := PublicBaseURL() + "/c/" + contract.AccessToken

	if deps.Mail != nil {
		html := "<p>Please review and sign: <a href=\"" + signingURL + "\">" + contract.Title + "</a></p>"
		text := "Please review and sign: " + signingURL
		if err := deps.Mail.Send(contract.ClientEmail, "Contract: "+contract.Title, html, text); err != nil {
			return serviceError(c, err)
		}
	}

	now := time.Now()
	updates := map[string]any{
		"status":       models.ContractSent,
		"sent_at":      &now,
		"access_token": contract.AccessToken,
	}
	if err := database.DB.Model(&contract).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"contract":    contract,
		"signing_url": signingURL,
	})
}

// CancelContract cancels from any non-terminal state.
func CancelContract(c *fiber.Ctx) error {
	var contract models.Contract
	if err := findOwnedContract(c, &contract); err != nil {
		return err
	}
	if !contract.CanTransition(models.ContractCancelled) {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "contract cannot be cancelled from status " + contract.Status,
		})
	}
	if err := database.DB.Model(&contract).Update("status", models.ContractCancelled).Error; err != nil {
		return err
	}
	return c.JSON(contract)
}

func ExportContractPDF(c *fiber.Ctx) error {
	var contract models.Contract
	if err := findOwnedContract(c, &contract); err != nil {
		return err
	}
	if deps.PDF == nil {
		return serviceError(c, errServiceMissing)
	}
	pdf, err := deps.PDF.Render(contract.Content, contract.Title+".pdf")
	if err != nil {
		return serviceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

func findContractByToken(c *fiber.Ctx) (*models.Contract, error) {
	var contract models.Contract
	err := database.DB.Where("access_token = ?", c.Params("token")).First(&contract).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fiber.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// ViewContractByToken is the public signing page data source. Opening it
// reports "viewed" the first time.
func ViewContractByToken(c *fiber.Ctx) error {
	contract, err := findContractByToken(c)
	if err != nil {
		return err
	}
	if contract.Status == models.ContractSent && contract.CanTransition(models.ContractViewed) {
		if err := database.DB.Model(contract).Update("status", models.ContractViewed).Error; err != nil {
			return err
		}
		contract.Status = models.ContractViewed
	}
	return c.JSON(contract)
}

// SignContractByToken records the client signature via the public token.
// Write-once: a contract that already carries a client signature refuses a
// second one.
func SignContractByToken(c *fiber.Ctx) error {
	contract, err := findContractByToken(c)
	if err != nil {
		return err
	}
	if contract.ClientSignedAt != nil {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "contract is already signed",
		})
	}
	if !contract.CanTransition(models.ContractSigned) {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "contract cannot be signed from status " + contract.Status,
		})
	}

	var data signContractDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	if deps.Store == nil {
		return serviceError(c, errServiceMissing)
	}
	signatureURL, err := deps.Store.UploadDataURL(c.Context(), "signatures", data.SignatureData)
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not store signature",
			"error":   err.Error(),
		})
	}

	now := time.Now()
	updates := map[string]any{
		"status":               models.ContractSigned,
		"signer_name":          data.SignerName,
		"signer_email":         data.SignerEmail,
		"client_signature_url": signatureURL,
		"client_signed_at":     &now,
	}
	if err := database.DB.Model(contract).Updates(updates).Error; err != nil {
		return err
	}
	return c.JSON(contract)
}

// CountersignContract applies the owner's signature. Only exposed when the
// client has already signed.
func CountersignContract(c *fiber.Ctx) error {
	var contract models.Contract
	if err := findOwnedContract(c, &contract); err != nil {
		return err
	}
	if !contract.CanTransition(models.ContractCountersigned) {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "contract cannot be countersigned from status " + contract.Status,
		})
	}

	var data countersignDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	if deps.Store == nil {
		return serviceError(c, errServiceMissing)
	}
	signatureURL, err := deps.Store.UploadDataURL(c.Context(), "signatures", data.SignatureData)
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not store signature",
			"error":   err.Error(),
		})
	}

	now := time.Now()
	updates := map[string]any{
		"status":             models.ContractCountersigned,
		"user_signature_url": signatureURL,
		"user_signed_at":     &now,
	}
	if err := database.DB.Model(&contract).Updates(updates).Error; err != nil {
		return err
	}
	return c.JSON(contract)
}
