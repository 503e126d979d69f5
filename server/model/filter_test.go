package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testMembers = []Member{
	{ID: "1", Name: "Maria dos Santos", Email: "maria@example.com", Phone: "+244 923 111 222", Status: MemberAtivo, MembershipType: "regular"},
	{ID: "2", Name: "João Pereira", Email: "joao@example.com", Phone: "+244 923 333 444", Status: MemberInativo, MembershipType: "regular"},
	{ID: "3", Name: "Ana Maria Costa", Email: "ana@example.com", Phone: "+244 923 555 666", Status: MemberAtivo, MembershipType: "honorario"},
	{ID: "4", Name: "Carlos Neto", Email: "carlos@example.com", Phone: "+244 923 777 888", Status: MemberSuspenso, MembershipType: "associado"},
}

func ids(members []Member) []string {
	out := []string{}
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}

func TestFilterMembers(t *testing.T) {
	cases := []struct {
		filter   MemberFilter
		expected []string
	}{
		// No predicates: everything, in input order
		{MemberFilter{}, []string{"1", "2", "3", "4"}},
		{MemberFilter{Status: "all", MembershipType: "all"}, []string{"1", "2", "3", "4"}},

		// Search is a case-insensitive substring over name, email, phone
		{MemberFilter{Search: "maria"}, []string{"1", "3"}},
		{MemberFilter{Search: "MARIA"}, []string{"1", "3"}},
		{MemberFilter{Search: "joao@"}, []string{"2"}},
		{MemberFilter{Search: "777 888"}, []string{"4"}},
		{MemberFilter{Search: "nonexistent"}, []string{}},

		// Facets are exact
		{MemberFilter{Status: "ativo"}, []string{"1", "3"}},
		{MemberFilter{Status: "suspenso"}, []string{"4"}},
		{MemberFilter{MembershipType: "regular"}, []string{"1", "2"}},

		// Predicates AND together
		{MemberFilter{Search: "maria", Status: "ativo"}, []string{"1", "3"}},
		{MemberFilter{Search: "maria", MembershipType: "honorario"}, []string{"3"}},
		{MemberFilter{Search: "maria", Status: "inativo"}, []string{}},
	}
	for _, c := range cases {
		got := FilterMembers(testMembers, c.filter)
		require.NotNil(t, got)
		require.Equal(t, c.expected, ids(got), "filter %+v", c.filter)
	}
}

func TestFilterMembersEmptyInput(t *testing.T) {
	got := FilterMembers(nil, MemberFilter{Search: "x"})
	require.NotNil(t, got)
	require.Empty(t, got)
}
