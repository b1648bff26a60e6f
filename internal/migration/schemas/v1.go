package schemas

// MigracaoV1 cria as tabelas de usuários, ferramentas e empréstimos
func MigracaoV1() *Migracao {
	return &Migracao{
		Versao:    "v1",
		Descricao: "tabelas usuarios, ferramentas e emprestimos",
		SQL: `
CREATE TABLE IF NOT EXISTS usuarios (
	id           SERIAL PRIMARY KEY,
	nome         VARCHAR(100) NOT NULL UNIQUE,
	senha        VARCHAR(255) NOT NULL,
	nascimento   DATE,
	codigo       VARCHAR(50),
	cargo        VARCHAR(100),
	data_criacao TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ferramentas (
	id             SERIAL PRIMARY KEY,
	nome           VARCHAR(200) NOT NULL,
	categoria_id   VARCHAR(20),
	categoria_nome VARCHAR(100),
	patrimonio     VARCHAR(120) NOT NULL UNIQUE,
	disponivel     BOOLEAN NOT NULL DEFAULT true,
	imagem_url     TEXT,
	detalhes       TEXT,
	local          VARCHAR(200),
	qrcode_url     TEXT,
	adicionado_por INTEGER REFERENCES usuarios(id) ON DELETE SET NULL,
	data_criacao   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS emprestimos (
	id               SERIAL PRIMARY KEY,
	ferramenta_id    INTEGER NOT NULL REFERENCES ferramentas(id),
	usuario_id       INTEGER NOT NULL REFERENCES usuarios(id),
	data_emprestimo  TIMESTAMPTZ NOT NULL DEFAULT now(),
	data_devolucao   TIMESTAMPTZ,
	status           VARCHAR(20) NOT NULL DEFAULT 'emprestado',
	local_emprestimo VARCHAR(200),
	local_devolucao  VARCHAR(200)
);`,
	}
}
