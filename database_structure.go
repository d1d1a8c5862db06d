package datasystem

var (
	DatabaseStructure = []string{
		"INVALID SQL, index 0 is not allowed for database updates",

		"CREATE TABLE `authorizations`(`id` bigint(20) UNSIGNED NOT NULL, `token` char(36) NOT NULL, `locked` tinyint(1) NOT NULL DEFAULT 1, `flags` int NOT NULL DEFAULT 1, `created` timestamp NOT NULL DEFAULT current_timestamp()) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;",
		"ALTER TABLE `authorizations` ADD UNIQUE KEY `id` (`id`), ADD UNIQUE KEY `token` (`token`);",
		"ALTER TABLE `authorizations` MODIFY `id` bigint(20) UNSIGNED NOT NULL AUTO_INCREMENT;",

		"CREATE TABLE `sensor_readings`(`id` bigint(20) UNSIGNED NOT NULL, `timestamp` datetime NOT NULL, `device` char(12) NOT NULL, `carbon_dioxide` decimal(20,6) DEFAULT NULL, `humidity` decimal(20,6) DEFAULT NULL, `light` tinyint(1) DEFAULT NULL, `lpg` decimal(20,6) DEFAULT NULL, `motion` tinyint(1) DEFAULT NULL, `smoke` decimal(20,6) DEFAULT NULL, `temperature` decimal(20,6) DEFAULT NULL, `additional_data` json DEFAULT NULL, `authorization_id` bigint(20) UNSIGNED NOT NULL) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;",
		"ALTER TABLE `sensor_readings` ADD UNIQUE KEY `id` (`id`), ADD KEY `device` (`device`), ADD KEY `timestamp` (`timestamp`);",
		"ALTER TABLE `sensor_readings` MODIFY `id` bigint(20) UNSIGNED NOT NULL AUTO_INCREMENT;",
		"ALTER TABLE `sensor_readings` ADD CONSTRAINT `sensor_readings_authorization_lock` FOREIGN KEY (`authorization_id`) REFERENCES `authorizations` (`id`);",
	}
)
