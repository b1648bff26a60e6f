package schemas

// MigracaoV2 adiciona os índices das consultas de grupo e de empréstimos em aberto
func MigracaoV2() *Migracao {
	return &Migracao{
		Versao:    "v2",
		Descricao: "índices de agrupamento e empréstimos em aberto",
		SQL: `
CREATE INDEX IF NOT EXISTS idx_ferramentas_nome_categoria ON ferramentas (nome, categoria_id);
CREATE INDEX IF NOT EXISTS idx_ferramentas_qrcode_url ON ferramentas (qrcode_url);
CREATE INDEX IF NOT EXISTS idx_emprestimos_ferramenta ON emprestimos (ferramenta_id, data_emprestimo DESC);
CREATE INDEX IF NOT EXISTS idx_emprestimos_abertos ON emprestimos (usuario_id) WHERE data_devolucao IS NULL;`,
	}
}
