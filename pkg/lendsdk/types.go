package lendsdk

import (
	"time"

	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/jwtx"
)

// Envelope is embedded in every response body.
type Envelope = httpx.Envelope

// ============================================================================
// Accounts and sessions
// ============================================================================

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery"`
}

type User struct {
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	MFAEnabled bool      `json:"mfa_enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserResponse struct {
	Envelope
	User User `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type SessionResponse struct {
	Envelope
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type" example:"Bearer"`
	ExpiresIn   int       `json:"expires_in"` // seconds
	ExpiresAt   time.Time `json:"expires_at"`
	Scope       string    `json:"scope" example:"inventory:read inventory:write"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type PasswordResetRequest struct {
	Username string `json:"username"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// ============================================================================
// MFA
// ============================================================================

type TOTPEnrollResponse struct {
	Envelope
	Secret  string `json:"secret"`
	URL     string `json:"url"` // otpauth:// URL for QR codes
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

type TOTPCodeRequest struct {
	Code string `json:"code" example:"123456"`
}

// ============================================================================
// Hardware
// ============================================================================

type CreateHardwareSetRequest struct {
	Name     string `json:"name" example:"HWSet1"`
	Capacity int    `json:"capacity" example:"100"`
}

type HardwareSet struct {
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Available int    `json:"available"`
}

type HardwareSetResponse struct {
	Envelope
	HardwareSet HardwareSet `json:"hardware_set"`
}

type HardwareListResponse struct {
	Envelope
	HardwareSets []HardwareSet `json:"hardware_sets"`
}

// SetInventory is a hardware set with the units each project holds, keyed by
// public project id.
type SetInventory struct {
	Name       string         `json:"name"`
	Capacity   int            `json:"capacity"`
	Available  int            `json:"available"`
	CheckedOut int            `json:"checked_out"`
	Holdings   map[string]int `json:"holdings"`
}

type InventoryResponse struct {
	Envelope
	Inventory []SetInventory `json:"inventory"`
}

// ============================================================================
// Projects
// ============================================================================

type CreateProjectRequest struct {
	ProjectID   string `json:"project_id" example:"proj-a"`
	Name        string `json:"name" example:"Robot arm"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectRequest changes any subset of the owner-editable fields.
type UpdateProjectRequest struct {
	ProjectID   *string `json:"project_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type InviteRequest struct {
	Username string `json:"username"`
}

type Project struct {
	ProjectID   string         `json:"project_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       string         `json:"owner"`
	Members     []string       `json:"members"`
	Holdings    map[string]int `json:"holdings"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ProjectResponse struct {
	Envelope
	Project Project `json:"project"`
}

type ProjectListResponse struct {
	Envelope
	Projects []Project `json:"projects"`
}

// ============================================================================
// Inventory
// ============================================================================

type InventoryRequest struct {
	HWSet string `json:"hw_set" example:"HWSet1"`
	Qty   int    `json:"qty" example:"4"`
}

type Movement struct {
	ProjectID string `json:"project_id"`
	HWSet     string `json:"hw_set"`
	Action    string `json:"action"`
	Qty       int    `json:"qty"`
	Available int    `json:"available"`
	Holding   int    `json:"holding"`
}

type MovementResponse struct {
	Envelope
	Movement Movement `json:"movement"`
}

type TransferLine struct {
	HWSet  string `json:"hw_set"`
	Action string `json:"action" enums:"checkout,checkin"`
	Qty    int    `json:"qty"`
}

type TransferRequest struct {
	Lines []TransferLine `json:"lines"`
}

// TransferResult reports one line. Error holds a typed error code when the
// line failed; Movement is set when it succeeded.
type TransferResult struct {
	Line     TransferLine `json:"line"`
	Success  bool         `json:"success"`
	Error    string       `json:"error,omitempty"`
	Message  string       `json:"message,omitempty"`
	Movement *Movement    `json:"movement,omitempty"`
}

type TransferResponse struct {
	Envelope
	Results []TransferResult `json:"results"`
}

// ============================================================================
// Usage
// ============================================================================

type UsageRecord struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	HWSet     string    `json:"hw_set"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Qty       int       `json:"qty"`
	Timestamp time.Time `json:"timestamp"`
}

type UsageResponse struct {
	Envelope
	Records []UsageRecord `json:"records"`
}

// ============================================================================
// System
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

type HealthResponse struct {
	Envelope
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// JWKSResponse is the public key set used to verify access tokens.
type JWKSResponse jwtx.JWKS
