package dto

// SearchParams mirrors the Casa dos Dados advanced search filters
// @Description Company registry search filters
type SearchParams struct {
	// Location
	UF        []string `json:"uf,omitempty" example:"PE"`
	Municipio []string `json:"municipio,omitempty" example:"recife"`
	Bairro    []string `json:"bairro,omitempty"`
	CEP       []string `json:"cep,omitempty"`
	DDD       []string `json:"ddd,omitempty"`

	// Economic activity
	CodigoAtividadePrincipal   []string `json:"codigo_atividade_principal,omitempty" example:"4110700"`
	CodigoAtividadeSecundaria  []string `json:"codigo_atividade_secundaria,omitempty"`
	IncluirAtividadeSecundaria *bool    `json:"incluir_atividade_secundaria,omitempty"`
	CodigoNaturezaJuridica     []string `json:"codigo_natureza_juridica,omitempty"`

	SituacaoCadastral []string `json:"situacao_cadastral,omitempty" example:"ATIVA"`
	MatrizFilial      string   `json:"matriz_filial,omitempty" binding:"omitempty,oneof=MATRIZ FILIAL"`

	BuscaTextual  []TextSearch  `json:"busca_textual,omitempty"`
	DataAbertura  *DateRange    `json:"data_abertura,omitempty"`
	CapitalSocial *CapitalRange `json:"capital_social,omitempty"`
	MEI           *RegimeFilter `json:"mei,omitempty"`
	Simples       *RegimeFilter `json:"simples,omitempty"`

	// Extra filters, sent nested under mais_filtros
	SomenteMatriz      bool `json:"somente_matriz,omitempty"`
	SomenteFilial      bool `json:"somente_filial,omitempty"`
	ComEmail           bool `json:"com_email,omitempty"`
	ComTelefone        bool `json:"com_telefone,omitempty"`
	SomenteFixo        bool `json:"somente_fixo,omitempty"`
	SomenteCelular     bool `json:"somente_celular,omitempty"`
	ExcluirEmailContab bool `json:"excluir_email_contab,omitempty"`

	// Page size requested from the provider
	Limite int `json:"limite,omitempty" example:"40"`
}

// TextSearch is one free-text clause of a registry search
type TextSearch struct {
	Texto        []string `json:"texto"`
	TipoBusca    string   `json:"tipo_busca" binding:"omitempty,oneof=exata radical"`
	RazaoSocial  bool     `json:"razao_social"`
	NomeFantasia bool     `json:"nome_fantasia"`
	NomeSocio    bool     `json:"nome_socio"`
}

// DateRange filters by company opening date
type DateRange struct {
	Inicio      string `json:"inicio,omitempty" example:"2020-01-01"`
	Fim         string `json:"fim,omitempty"`
	UltimosDias int    `json:"ultimos_dias,omitempty"`
}

// CapitalRange filters by registered share capital
type CapitalRange struct {
	Minimo float64 `json:"minimo,omitempty"`
	Maximo float64 `json:"maximo,omitempty"`
}

// RegimeFilter filters by tax regime membership
type RegimeFilter struct {
	Optante        *bool `json:"optante,omitempty"`
	ExcluirOptante *bool `json:"excluir_optante,omitempty"`
}

// SearchRequest is the body of the single-page passthrough search
// @Description Single page registry search
type SearchRequest struct {
	Params SearchParams `json:"params"`
	// Page number (default: 1)
	Page int `json:"page" binding:"omitempty,min=1,max=100" example:"1"`
}

// SearchPage is one page of registry results
type SearchPage struct {
	Results []Company `json:"cnpjs"`
	Total   *int      `json:"total,omitempty"`
}
