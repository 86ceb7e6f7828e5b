package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Platform users. Auxiliary tables reference users(id) without
			-- ON DELETE CASCADE on purpose: the admin delete flow removes the
			-- dependent rows itself, table by table, and a leftover row must
			-- surface as a foreign key violation rather than vanish silently.
			CREATE TABLE users (
				id UUID PRIMARY KEY,
				account_id VARCHAR(255) NOT NULL,
				email VARCHAR(255) NOT NULL UNIQUE,
				name VARCHAR(255) NOT NULL DEFAULT '',
				role VARCHAR(50) NOT NULL CHECK (role IN ('admin', 'member')),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX idx_users_account_id ON users(account_id);

			-- Workflow graphs. Nodes and edges are stored as whole JSONB
			-- documents; saves overwrite the blobs and the last write wins.
			-- user_id records the owning user so the admin delete flow can
			-- sweep workflows like the other per-user tables; it is nullable
			-- for workflows that predate ownership tracking.
			CREATE TABLE workflows (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				status VARCHAR(50) NOT NULL CHECK (status IN ('draft', 'active', 'paused')),
				account_id VARCHAR(255) NOT NULL,
				user_id UUID REFERENCES users(id),
				assistant_id VARCHAR(255),
				nodes JSONB NOT NULL DEFAULT '[]',
				edges JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_workflows_account_id ON workflows(account_id);
			CREATE INDEX idx_workflows_user_id ON workflows(user_id);
			CREATE INDEX idx_workflows_status ON workflows(status);
			CREATE INDEX idx_workflows_created_at ON workflows(created_at);
			CREATE INDEX idx_workflows_deleted_at ON workflows(deleted_at);

			-- Call and SMS history, read by the conversations view and swept
			-- by the admin user delete.
			CREATE TABLE call_history (
				id UUID PRIMARY KEY,
				user_id UUID REFERENCES users(id),
				account_id VARCHAR(255) NOT NULL,
				assistant_id VARCHAR(255),
				phone_number VARCHAR(50) NOT NULL,
				contact_name VARCHAR(255),
				status VARCHAR(50) NOT NULL,
				transcript TEXT,
				duration_seconds INT NOT NULL DEFAULT 0,
				recording_url TEXT,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX idx_call_history_account_id ON call_history(account_id);
			CREATE INDEX idx_call_history_phone ON call_history(account_id, phone_number);
			CREATE INDEX idx_call_history_created_at ON call_history(created_at);

			CREATE TABLE sms_messages (
				id UUID PRIMARY KEY,
				user_id UUID REFERENCES users(id),
				account_id VARCHAR(255) NOT NULL,
				phone_number VARCHAR(50) NOT NULL,
				body TEXT NOT NULL,
				direction VARCHAR(20) NOT NULL CHECK (direction IN ('inbound', 'outbound')),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX idx_sms_messages_account_id ON sms_messages(account_id);
			CREATE INDEX idx_sms_messages_phone ON sms_messages(account_id, phone_number);

			-- Tenant branding.
			CREATE TABLE website_settings (
				id UUID PRIMARY KEY,
				account_id VARCHAR(255) NOT NULL UNIQUE,
				brand_name VARCHAR(255) NOT NULL,
				slug VARCHAR(255) NOT NULL UNIQUE,
				logo_url TEXT,
				support_email VARCHAR(255),
				custom_domain VARCHAR(255),
				active BOOLEAN NOT NULL DEFAULT false,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			-- Stored OAuth connections to third-party providers.
			CREATE TABLE connections (
				id UUID PRIMARY KEY,
				account_id VARCHAR(255) NOT NULL,
				provider VARCHAR(100) NOT NULL,
				external_id VARCHAR(255),
				display_name VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX idx_connections_account_provider ON connections(account_id, provider);

			-- Temporary support-access grants.
			CREATE TABLE support_sessions (
				id UUID PRIMARY KEY,
				account_id VARCHAR(255) NOT NULL,
				granted_to VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				ended_at TIMESTAMP WITH TIME ZONE
			);

			-- Per-user auxiliary tables swept by the admin user delete.
			CREATE TABLE assistants (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				name VARCHAR(255) NOT NULL,
				config JSONB DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE campaigns (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				name VARCHAR(255) NOT NULL,
				status VARCHAR(50) NOT NULL DEFAULT 'draft',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE contacts (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				phone_number VARCHAR(50),
				name VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE contact_lists (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				name VARCHAR(255) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE csv_files (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				filename VARCHAR(255) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE csv_contacts (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				csv_file_id UUID,
				row_data JSONB DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE knowledge_bases (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				name VARCHAR(255) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE user_calendar_credentials (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				provider VARCHAR(100) NOT NULL,
				credentials JSONB DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE user_whatsapp_credentials (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				credentials JSONB DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE user_twilio_credentials (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				credentials JSONB DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE workspace_settings (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				settings JSONB DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);
		`,
	}
}
