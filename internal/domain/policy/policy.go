package policy

import "github.com/almoxpro/almox-api/internal/domain/entity"

// Ações autorizáveis. A verificação é centralizada aqui em vez de espalhada
// em comparações de identidade nos handlers.
const (
	ActionTransfer       = "transfer"        // submeter transferências entre depósitos
	ActionProcessNota    = "process_nota"    // processar notas fiscais (estoque/consumo)
	ActionIngestNota     = "ingest_nota"     // subir XML de NF-e
	ActionManageProducts = "manage_products" // criar/editar produtos e depósitos
	ActionManageUsers    = "manage_users"    // criar usuários
	ActionViewReports    = "view_reports"    // consultar relatórios
)

// matriz de capacidades por role.
var capabilities = map[string]map[string]bool{
	entity.RoleAdmin: {
		ActionTransfer:       true,
		ActionProcessNota:    true,
		ActionIngestNota:     true,
		ActionManageProducts: true,
		ActionManageUsers:    true,
		ActionViewReports:    true,
	},
	entity.RoleAlmoxarife: {
		ActionTransfer:       true,
		ActionProcessNota:    true,
		ActionIngestNota:     true,
		ActionManageProducts: true,
		ActionViewReports:    true,
	},
	entity.RoleComprador: {
		ActionIngestNota:  true,
		ActionViewReports: true,
	},
	entity.RoleConsulta: {
		ActionViewReports: true,
	},
}

// Can informa se o role pode executar a ação.
func Can(role, action string) bool {
	caps, ok := capabilities[role]
	if !ok {
		return false
	}
	return caps[action]
}
