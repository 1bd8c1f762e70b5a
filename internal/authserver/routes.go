package authserver

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/v1/about"

	AuthorizeRoute = "/oauth2/authorize"
	LoginRoute     = "/login"
	TokenRoute     = "/oauth2/token"

	DiscoveryRoute = "/.well-known/openid-configuration"
	JWKSRoute      = "/oauth2/jwks"

	AdminParent           = "/v1/admin/"
	AdminAuditRoute       = AdminParent + "audit"
	AdminTasksRoute       = AdminParent + "tasks"
	AdminTaskTriggerRoute = AdminParent + "tasks/{name}/trigger"
	AdminTaskLogsRoute    = AdminParent + "tasks/{name}/logs"
)
