package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/policy"
)

func TestCan_MatrizDeCapacidades(t *testing.T) {
	cases := []struct {
		role   string
		action string
		want   bool
	}{
		{entity.RoleAdmin, policy.ActionManageUsers, true},
		{entity.RoleAdmin, policy.ActionTransfer, true},
		{entity.RoleAlmoxarife, policy.ActionTransfer, true},
		{entity.RoleAlmoxarife, policy.ActionProcessNota, true},
		{entity.RoleAlmoxarife, policy.ActionManageUsers, false},
		{entity.RoleComprador, policy.ActionIngestNota, true},
		{entity.RoleComprador, policy.ActionProcessNota, false},
		{entity.RoleComprador, policy.ActionTransfer, false},
		{entity.RoleConsulta, policy.ActionViewReports, true},
		{entity.RoleConsulta, policy.ActionTransfer, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.Can(tc.role, tc.action),
			"role=%s action=%s", tc.role, tc.action)
	}
}

func TestCan_PapelDesconhecido(t *testing.T) {
	assert.False(t, policy.Can("estagiario", policy.ActionViewReports))
	assert.False(t, policy.Can("", policy.ActionViewReports))
}
